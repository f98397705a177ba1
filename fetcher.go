package xbrl

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	VERSION = "0.1.0"

	// SecEmailEnvVar is the environment variable name for the SEC contact email
	SecEmailEnvVar = "SEC_EMAIL"
)

// GetSecEmail retrieves email from environment variable or returns error
func GetSecEmail() (string, error) {
	email := os.Getenv(SecEmailEnvVar)
	if email == "" {
		return "", eris.Errorf("SEC email required: set %s environment variable or use --email flag", SecEmailEnvVar)
	}

	// Basic email validation
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return "", eris.Errorf("invalid email format: %s", email)
	}
	if strings.HasSuffix(email, "example.com") {
		return "", eris.Errorf("use a real email address, not example.com: %s", email)
	}
	return email, nil
}

// BuildUserAgent creates a proper SEC User-Agent string
func BuildUserAgent(email string) string {
	return "go-xbrl/" + VERSION + " (" + email + ")"
}

// DefaultRateLimiters returns the per-host rate limiters for SEC hosts.
// The SEC allows at most 10 requests/second.
func DefaultRateLimiters() map[string]*rate.Limiter {
	return map[string]*rate.Limiter{
		"www.sec.gov":  rate.NewLimiter(10, 10),
		"data.sec.gov": rate.NewLimiter(10, 10),
	}
}

// FetcherOptions configures the SEC fetcher.
type FetcherOptions struct {
	UserAgent    string // required: SEC rejects requests without a contact User-Agent
	Timeout      time.Duration
	RateLimiters map[string]*rate.Limiter
	Logger       *zap.Logger
}

// Fetcher downloads SEC EDGAR resources with per-host rate limiting and a
// compliant User-Agent header. Fetched resources are immutable archive files
// keyed by accession number, so no caching or retry policy is applied; a
// failed fetch of a mandatory document is surfaced to the caller.
type Fetcher struct {
	client    *http.Client
	userAgent string
	limiters  map[string]*rate.Limiter
	fallback  *rate.Limiter
	log       *zap.Logger
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RateLimiters == nil {
		opts.RateLimiters = DefaultRateLimiters()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Fetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		limiters:  opts.RateLimiters,
		fallback:  rate.NewLimiter(10, 10),
		log:       opts.Logger,
	}
}

func (f *Fetcher) limiterFor(rawURL string) *rate.Limiter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return f.fallback
	}
	if lim, ok := f.limiters[u.Host]; ok {
		return lim
	}
	return f.fallback
}

// Get fetches a SEC resource and returns its body.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if f.userAgent == "" {
		return nil, eris.New("user agent with contact email is required for SEC requests")
	}

	if err := f.limiterFor(rawURL).Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("SEC returned status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read response")
	}

	f.log.Debug("fetched SEC resource",
		zap.String("url", rawURL),
		zap.Int("bytes", len(body)),
	)

	return body, nil
}
