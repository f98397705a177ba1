package xbrl

import (
	"strings"
	"unicode"
)

// NormalizeDocument cleans Unicode and HTML-entity issues that appear in SEC
// inline filings before XML parsing. It is deliberately conservative: dash
// characters are preserved because the fact extractor treats "—" as a
// non-value marker, not as noise.
func NormalizeDocument(data []byte) []byte {
	text := string(data)

	// HTML entities that the XML decoder's entity table does not cover in
	// strict mode and that routinely appear inside fact text.
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&#160;", " ")
	text = strings.ReplaceAll(text, "&mdash;", "—")
	text = strings.ReplaceAll(text, "&#8212;", "—")
	text = strings.ReplaceAll(text, "&ndash;", "–")
	text = strings.ReplaceAll(text, "&#8211;", "–")

	// Non-breaking spaces inside numbers break float parsing.
	text = strings.ReplaceAll(text, "\u00A0", " ")
	text = strings.ReplaceAll(text, "\u202F", " ")

	// Zero-width characters should never survive into parsed values.
	text = strings.ReplaceAll(text, "\u200B", "")
	text = strings.ReplaceAll(text, "\uFEFF", "")

	// Normalize line endings (CRLF → LF)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return []byte(text)
}

// normalizeValueText cleans one fact's extracted text content ahead of
// numeric parsing: unicode whitespace becomes plain spaces, invisible format
// characters are dropped, and the result is trimmed.
func normalizeValueText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == ' ' || r == '\u00A0' || r == '\u202F':
			b.WriteRune(' ')
		case r == '\u200B' || r == '\u200C' || r == '\u200D' || r == '\uFEFF':
			// zero-width
		case unicode.Is(unicode.Cf, r):
			// other format characters
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
