package xbrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDialect(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Dialect
	}{
		{"inline namespace", `<html xmlns:ix="http://www.xbrl.org/2013/inlineXBRL"></html>`, DialectInline},
		{"inline element", `<html><body><ix:nonFraction/></body></html>`, DialectInline},
		{"standalone root", `<xbrl xmlns="http://www.xbrl.org/2003/instance"></xbrl>`, DialectStandalone},
		{"standalone namespace", `<doc xmlns:xbrli="http://www.xbrl.org/2003/instance"/>`, DialectStandalone},
		{"plain html", `<html><body><p>hello</p></body></html>`, DialectUnknown},
		{"empty", ``, DialectUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDialect([]byte(tt.doc)))
		})
	}
}

func TestParseInstance_Unknown(t *testing.T) {
	_, err := ParseInstance([]byte(`<html><body>not a filing</body></html>`))
	assert.Error(t, err)
}

func TestParseResources_Contexts(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xbrl xmlns="http://www.xbrl.org/2003/instance"
      xmlns:xbrldi="http://xbrl.org/2006/xbrldi">
  <context id="instant">
    <entity><identifier scheme="cik">1</identifier></entity>
    <period><instant>2024-12-31</instant></period>
  </context>
  <context id="duration">
    <entity><identifier scheme="cik">1</identifier></entity>
    <period><startDate>2024-01-01</startDate><endDate>2024-12-31</endDate></period>
  </context>
  <context id="segmented">
    <entity>
      <identifier scheme="cik">1</identifier>
      <segment>
        <xbrldi:explicitMember dimension="us-gaap:StatementGeographicalAxis">country:US</xbrldi:explicitMember>
      </segment>
    </entity>
    <period><instant>2024-12-31</instant></period>
  </context>
  <context id="typed">
    <entity>
      <identifier scheme="cik">1</identifier>
      <segment>
        <xbrldi:typedMember dimension="ex:LoanAxis"><ex:LoanDomain>7</ex:LoanDomain></xbrldi:typedMember>
      </segment>
    </entity>
    <period><instant>2024-12-31</instant></period>
  </context>
  <context id="startOnly">
    <entity><identifier scheme="cik">1</identifier></entity>
    <period><startDate>2024-01-01</startDate></period>
  </context>
  <context id="empty">
    <entity><identifier scheme="cik">1</identifier></entity>
    <period></period>
  </context>
</xbrl>`)

	contexts, _, skipped := parseResources(doc)

	require.Contains(t, contexts, "instant")
	assert.Equal(t, Period{Instant: "2024-12-31"}, contexts["instant"].Period)
	assert.Equal(t, PeriodInstant, contexts["instant"].Period.Kind())
	assert.False(t, contexts["instant"].Segmented)

	require.Contains(t, contexts, "duration")
	assert.Equal(t, PeriodDuration, contexts["duration"].Period.Kind())
	assert.Equal(t, "2024-12-31", contexts["duration"].Period.ReportDate())

	// Both explicit and typed dimensional members flag segmentation.
	assert.True(t, contexts["segmented"].Segmented)
	assert.True(t, contexts["typed"].Segmented)

	// Malformed periods are excluded entirely, not defaulted.
	assert.NotContains(t, contexts, "startOnly")
	assert.NotContains(t, contexts, "empty")
	assert.Equal(t, 2, skipped)
}

func TestParseResources_Units(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xbrl xmlns="http://www.xbrl.org/2003/instance">
  <unit id="usd"><measure>iso4217:USD</measure></unit>
  <unit id="perShare">
    <divide>
      <unitNumerator><measure>iso4217:USD</measure></unitNumerator>
      <unitDenominator><measure>xbrli:shares</measure></unitDenominator>
    </divide>
  </unit>
</xbrl>`)

	_, units, _ := parseResources(doc)
	assert.Equal(t, "iso4217:USD", units["usd"])
	assert.Equal(t, "iso4217:USD/xbrli:shares", units["perShare"])
}

func TestPeriodKind(t *testing.T) {
	assert.Equal(t, PeriodInstant, Period{Instant: "2024-12-31"}.Kind())
	assert.Equal(t, PeriodDuration, Period{StartDate: "2024-01-01", EndDate: "2024-12-31"}.Kind())
	assert.Equal(t, PeriodUnknown, Period{StartDate: "2024-01-01"}.Kind())
	assert.Equal(t, PeriodUnknown, Period{EndDate: "2024-12-31"}.Kind())
	assert.Equal(t, PeriodUnknown, Period{}.Kind())

	// Instant wins when a malformed context declares both.
	mixed := Period{Instant: "2024-12-31", StartDate: "2024-01-01", EndDate: "2024-12-31"}
	assert.Equal(t, PeriodInstant, mixed.Kind())
	assert.Equal(t, "2024-12-31", mixed.ReportDate())
}
