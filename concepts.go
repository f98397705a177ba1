package xbrl

import (
	"encoding/xml"
	"regexp"
	"strings"
)

// Concept identifiers appear in three encodings across a filing's documents:
//
//   - instance elements namespaced by the taxonomy (us-gaap:Assets as an
//     element name),
//   - inline elements carrying the concept in a name="us-gaap:Assets"
//     attribute,
//   - linkbase locators referencing schema fragments (....xsd#us-gaap_Assets).
//
// All three normalize to the bare concept name ("Assets"), which is the join
// key between facts and the per-statement orderings. Keeping the resolver in
// one place is what makes the presentation and calculation passes agree with
// the fact extractor.

// conceptFromQName strips the namespace prefix from a prefix:Concept string.
func conceptFromQName(qname string) string {
	if i := strings.LastIndex(qname, ":"); i >= 0 {
		return strings.TrimSpace(qname[i+1:])
	}
	return strings.TrimSpace(qname)
}

// conceptFromXMLName resolves a namespaced instance element to its concept
// name. encoding/xml already splits off the namespace, but defensive filers
// have been seen emitting prefixed local names.
func conceptFromXMLName(name xml.Name) string {
	return conceptFromQName(name.Local)
}

// conceptFromLocator resolves a linkbase locator href to its concept name.
// Locator fragments encode the prefix with an underscore: "#us-gaap_Assets".
func conceptFromLocator(href string) string {
	fragment := href
	if i := strings.LastIndex(href, "#"); i >= 0 {
		fragment = href[i+1:]
	}
	if i := strings.LastIndex(fragment, "_"); i >= 0 {
		return strings.TrimSpace(fragment[i+1:])
	}
	return strings.TrimSpace(fragment)
}

var (
	camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	multiSpace    = regexp.MustCompile(`\s+`)
)

// HumanizeConcept renders a concept name as a readable line-item label,
// e.g. "CashAndCashEquivalentsAtCarryingValue" → "Cash And Cash Equivalents
// At Carrying Value". Display only; the raw concept name stays the join key.
func HumanizeConcept(concept string) string {
	if concept == "" {
		return "Unknown"
	}
	label := camelBoundary.ReplaceAllString(conceptFromQName(concept), "$1 $2")
	label = multiSpace.ReplaceAllString(label, " ")
	return strings.TrimSpace(label)
}
