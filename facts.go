package xbrl

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"
)

// RawFact is one reported numeric data point, bound to a context by ID.
// Value is the decimal after scale and sign normalization. A fact with an
// unparsable or empty numeric representation is never stored: zero is
// reserved for the explicit fixed-zero formatting marker.
type RawFact struct {
	Concept    string
	ContextRef string
	Value      float64
}

// factAttrs are the formatting attributes a fact element may carry.
type factAttrs struct {
	format string
	scale  string
	sign   string
}

// extractFacts walks the instance document and emits the numeric facts whose
// context resolved. Any malformed element is skipped and counted; resilience
// to filer-specific tagging quirks beats failing the run on one bad element.
func extractFacts(data []byte, dialect Dialect, contexts map[string]Context) ([]RawFact, int) {
	if dialect == DialectInline {
		return extractInlineFacts(data, contexts)
	}
	return extractStandaloneFacts(data, contexts)
}

// extractStandaloneFacts handles the plain dialect: facts are dynamic
// elements namespaced by the reporting taxonomy, recognizable only by their
// contextRef attribute.
func extractStandaloneFacts(data []byte, contexts map[string]Context) ([]RawFact, int) {
	var facts []RawFact
	skipped := 0

	decoder := newDecoder(data)
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		elem, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if elem.Name.Local == "context" || elem.Name.Local == "unit" {
			continue
		}

		contextRef := getAttr(elem.Attr, "contextRef")
		if contextRef == "" {
			continue // Not a fact
		}
		if _, ok := contexts[contextRef]; !ok {
			skipped++
			continue
		}

		var text string
		if err := decoder.DecodeElement(&text, &elem); err != nil {
			skipped++
			continue
		}

		attrs := factAttrs{
			format: getAttr(elem.Attr, "format"),
			scale:  getAttr(elem.Attr, "scale"),
			sign:   getAttr(elem.Attr, "sign"),
		}

		value, ok := parseFactValue(text, attrs)
		if !ok {
			skipped++
			continue
		}

		facts = append(facts, RawFact{
			Concept:    conceptFromXMLName(elem.Name),
			ContextRef: contextRef,
			Value:      value,
		})
	}

	return facts, skipped
}

// extractInlineFacts handles the inline dialect: numeric facts are
// ix:nonFraction elements carrying the concept in a name attribute as
// prefix:Concept. Non-numeric (ix:nonNumeric) facts never feed statement
// tables and are not extracted.
func extractInlineFacts(data []byte, contexts map[string]Context) ([]RawFact, int) {
	var facts []RawFact
	skipped := 0

	decoder := newDecoder(data)
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		elem, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if elem.Name.Local != "nonFraction" {
			continue
		}

		contextRef := getAttr(elem.Attr, "contextRef")
		if contextRef == "" {
			continue // Not a valid fact
		}
		if _, ok := contexts[contextRef]; !ok {
			skipped++
			continue
		}

		name := getAttr(elem.Attr, "name")
		if name == "" {
			skipped++
			continue
		}

		attrs := factAttrs{
			format: getAttr(elem.Attr, "format"),
			scale:  getAttr(elem.Attr, "scale"),
			sign:   getAttr(elem.Attr, "sign"),
		}

		// Inline fact values routinely carry presentational markup (spans,
		// bold runs) around the digits, so the text is gathered across all
		// descendants rather than decoded as a flat element.
		text, err := collectText(decoder)
		if err != nil {
			skipped++
			continue
		}

		value, ok := parseFactValue(text, attrs)
		if !ok {
			skipped++
			continue
		}

		facts = append(facts, RawFact{
			Concept:    conceptFromQName(name),
			ContextRef: contextRef,
			Value:      value,
		})
	}

	return facts, skipped
}

// parseFactValue normalizes a fact's text into its numeric value.
//
// A format marker of fixed-zero means "always render as zero" and
// short-circuits before scale and sign logic. The dashes "—" and "-" and the
// empty string are non-values, not zeros. Parenthesized text denotes a
// negative in the inline dialect. The scale attribute is a power-of-ten
// multiplier, and an explicit sign marker forces the value negative
// regardless of parsed sign.
func parseFactValue(text string, attrs factAttrs) (float64, bool) {
	if strings.HasSuffix(attrs.format, "fixed-zero") {
		return 0, true
	}

	cleaned := normalizeValueText(text)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	// Filers occasionally group digits with (non-breaking) spaces.
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if cleaned == "" || cleaned == "-" || cleaned == "—" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		value = -value
	}

	if attrs.scale != "" {
		scale, err := strconv.Atoi(attrs.scale)
		if err != nil {
			return 0, false
		}
		value *= math.Pow10(scale)
	}

	if attrs.sign == "-" {
		value = -math.Abs(value)
	}

	return value, true
}

// collectText concatenates the character data of the current element and all
// of its descendants, consuming tokens up to the element's end tag. The
// decoder must be positioned just past the element's start tag.
func collectText(decoder *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(t)
		}
	}

	return b.String(), nil
}

// getAttr gets an attribute value by local name
func getAttr(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}
