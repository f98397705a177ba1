package xbrl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSecEmail(t *testing.T) {
	t.Setenv(SecEmailEnvVar, "analyst@finlens.io")
	email, err := GetSecEmail()
	require.NoError(t, err)
	assert.Equal(t, "analyst@finlens.io", email)
}

func TestGetSecEmail_Missing(t *testing.T) {
	t.Setenv(SecEmailEnvVar, "")
	_, err := GetSecEmail()
	assert.Error(t, err)
}

func TestGetSecEmail_Invalid(t *testing.T) {
	t.Setenv(SecEmailEnvVar, "not-an-email")
	_, err := GetSecEmail()
	assert.Error(t, err)

	t.Setenv(SecEmailEnvVar, "someone@example.com")
	_, err = GetSecEmail()
	assert.Error(t, err, "placeholder domains are rejected")
}

func TestBuildUserAgent(t *testing.T) {
	ua := BuildUserAgent("analyst@finlens.io")
	assert.Contains(t, ua, "go-xbrl/")
	assert.Contains(t, ua, "analyst@finlens.io")
}

func TestFetcherGet(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	f := NewFetcher(FetcherOptions{UserAgent: "go-xbrl/test (a@b.co)"})
	body, err := f.Get(context.Background(), server.URL+"/file.xml")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
	assert.Equal(t, "go-xbrl/test (a@b.co)", gotUA)
}

func TestFetcherGet_RequiresUserAgent(t *testing.T) {
	f := NewFetcher(FetcherOptions{})
	_, err := f.Get(context.Background(), "https://www.sec.gov/anything")
	assert.Error(t, err)
}

func TestFetcherGet_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewFetcher(FetcherOptions{UserAgent: "go-xbrl/test (a@b.co)"})
	_, err := f.Get(context.Background(), server.URL+"/missing.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcherGet_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(FetcherOptions{UserAgent: "go-xbrl/test (a@b.co)"})
	_, err := f.Get(ctx, "https://www.sec.gov/anything")
	assert.Error(t, err)
}
