package xbrl

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// Dialect identifies the tagging dialect of an instance document.
type Dialect string

const (
	// DialectStandalone is the plain tag-per-fact XML dialect (facts are
	// elements namespaced by the reporting taxonomy).
	DialectStandalone Dialect = "standalone"

	// DialectInline is the inline-XBRL dialect: facts embedded in an HTML
	// document as ix:nonFraction elements carrying the concept in a name
	// attribute.
	DialectInline Dialect = "inline"

	// DialectUnknown means the document carries neither dialect's markers.
	DialectUnknown Dialect = "unknown"
)

// PeriodKind distinguishes instant from duration reporting periods.
type PeriodKind int

const (
	PeriodUnknown PeriodKind = iota
	PeriodInstant
	PeriodDuration
)

// Period is the reporting period declared by a context.
type Period struct {
	Instant   string // Point in time (balance sheet)
	StartDate string // Duration start (income statement)
	EndDate   string // Duration end
}

// Kind reports whether the period is an instant, a duration, or malformed.
func (p Period) Kind() PeriodKind {
	switch {
	case p.Instant != "":
		return PeriodInstant
	case p.StartDate != "" && p.EndDate != "":
		return PeriodDuration
	default:
		return PeriodUnknown
	}
}

// ReportDate returns the date a fact bound to this period is keyed by:
// the instant date, or the duration's end date. Statement columns are keyed
// by period end by convention.
func (p Period) ReportDate() string {
	if p.Instant != "" {
		return p.Instant
	}
	return p.EndDate
}

// Context is one declared reporting period in the instance document.
// Segmented contexts declare a dimensional member (a non-consolidated
// breakdown such as per-geography revenue); they are recorded so their facts
// can be excluded later, but never participate in statement assembly.
type Context struct {
	ID        string
	Period    Period
	Segmented bool
}

// Instance is a parsed XBRL instance document: the context map, the unit
// map, and the raw numeric facts, plus skip counters for the elements that
// were dropped as malformed.
type Instance struct {
	Dialect  Dialect
	Contexts map[string]Context
	Units    map[string]string
	Facts    []RawFact

	SkippedContexts int
	SkippedFacts    int
}

// DetectDialect determines whether the document is inline or standalone XBRL.
func DetectDialect(data []byte) Dialect {
	content := string(data)

	if strings.Contains(content, "xmlns:ix=") ||
		strings.Contains(content, "<ix:") ||
		strings.Contains(content, "inlineXBRL") {
		return DialectInline
	}

	if strings.Contains(content, "<xbrl") ||
		strings.Contains(content, "xmlns:xbrli=") {
		return DialectStandalone
	}

	return DialectUnknown
}

// ParseInstance detects the dialect and parses the instance document.
// Individual malformed contexts and facts are skipped and counted; only a
// document that is not XBRL at all is an error.
func ParseInstance(data []byte) (*Instance, error) {
	dialect := DetectDialect(data)
	if dialect == DialectUnknown {
		return nil, eris.New("document is not a recognized XBRL instance")
	}

	if dialect == DialectInline {
		// Inline documents come from HTML and carry entities and unicode
		// spacing the XML decoder chokes on.
		data = NormalizeDocument(data)
	}

	inst := &Instance{Dialect: dialect}
	inst.Contexts, inst.Units, inst.SkippedContexts = parseResources(data)
	inst.Facts, inst.SkippedFacts = extractFacts(data, dialect, inst.Contexts)

	return inst, nil
}

// newDecoder returns an XML decoder tolerant of the charset declarations and
// named entities found in SEC filings.
func newDecoder(data []byte) *xml.Decoder {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		// Treat ASCII and other charsets as UTF-8
		return input, nil
	}
	decoder.Entity = xml.HTMLEntity
	return decoder
}

// xmlContext mirrors the context element of both dialects.
type xmlContext struct {
	ID     string `xml:"id,attr"`
	Entity struct {
		Segment *struct {
			Explicit []struct {
				Dimension string `xml:"dimension,attr"`
			} `xml:"explicitMember"`
			Typed []struct {
				Dimension string `xml:"dimension,attr"`
			} `xml:"typedMember"`
		} `xml:"segment"`
	} `xml:"entity"`
	Period struct {
		Instant   string `xml:"instant"`
		StartDate string `xml:"startDate"`
		EndDate   string `xml:"endDate"`
	} `xml:"period"`
}

// xmlUnit mirrors the unit element, including ratio units.
type xmlUnit struct {
	ID      string `xml:"id,attr"`
	Measure string `xml:"measure"`
	Divide  *struct {
		Numerator   string `xml:"unitNumerator>measure"`
		Denominator string `xml:"unitDenominator>measure"`
	} `xml:"divide"`
}

// parseResources collects the context and unit declarations. In inline
// documents these live inside the ix:resources block; in standalone
// documents they are children of the xbrl root. The element local names are
// identical, so one walk serves both dialects.
//
// A context missing both an instant and a start/end pair is invalid and
// excluded from the map entirely; facts referencing it are later dropped for
// having no resolvable date. This is expected filing noise, not an error.
func parseResources(data []byte) (map[string]Context, map[string]string, int) {
	contexts := make(map[string]Context)
	units := make(map[string]string)
	skipped := 0

	decoder := newDecoder(data)
	for {
		token, err := decoder.Token()
		if err != nil {
			break // io.EOF or malformed tail; keep what we have
		}

		elem, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch elem.Name.Local {
		case "context":
			var xc xmlContext
			if err := decoder.DecodeElement(&xc, &elem); err != nil {
				skipped++
				continue
			}
			ctx, ok := resolveContext(xc)
			if !ok {
				skipped++
				continue
			}
			contexts[ctx.ID] = ctx

		case "unit":
			var xu xmlUnit
			if err := decoder.DecodeElement(&xu, &elem); err != nil {
				continue
			}
			if xu.ID == "" {
				continue
			}
			measure := strings.TrimSpace(xu.Measure)
			if xu.Divide != nil {
				measure = strings.TrimSpace(xu.Divide.Numerator) + "/" + strings.TrimSpace(xu.Divide.Denominator)
			}
			units[xu.ID] = measure
		}
	}

	return contexts, units, skipped
}

// resolveContext validates a decoded context and flags segmentation.
func resolveContext(xc xmlContext) (Context, bool) {
	if xc.ID == "" {
		return Context{}, false
	}

	period := Period{
		Instant:   strings.TrimSpace(xc.Period.Instant),
		StartDate: strings.TrimSpace(xc.Period.StartDate),
		EndDate:   strings.TrimSpace(xc.Period.EndDate),
	}
	if period.Kind() == PeriodUnknown {
		return Context{}, false
	}

	segmented := false
	if seg := xc.Entity.Segment; seg != nil {
		segmented = len(seg.Explicit)+len(seg.Typed) > 0
	}

	return Context{ID: xc.ID, Period: period, Segmented: segmented}, true
}
