package xbrl

import (
	"encoding/xml"
	"io"

	"github.com/rotisserie/eris"
)

// ParseCalculation parses the calculation linkbase as a secondary concept
// source. The calculation linkbase encodes numeric rollups, not display
// order, so only the set of concepts each role references matters; the
// declaration order of the loc elements is kept for stable output.
func ParseCalculation(data []byte) (map[Statement][]string, error) {
	result := make(map[Statement][]string)
	sawLink := false

	var statement Statement
	inBlock := false
	var concepts []string
	seen := make(map[string]bool)

	decoder := newDecoder(data)
	for {
		token, err := decoder.Token()
		if err != nil {
			if err != io.EOF && !sawLink {
				return nil, eris.Wrap(err, "parse calculation linkbase")
			}
			break
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "calculationLink":
				sawLink = true
				stmt, ok := ClassifyRole(getAttr(elem.Attr, "role"))
				if !ok {
					if err := decoder.Skip(); err != nil {
						return result, nil
					}
					continue
				}
				statement = stmt
				inBlock = true
				concepts = nil
				seen = make(map[string]bool)

			case "loc":
				if !inBlock {
					continue
				}
				href := getAttr(elem.Attr, "href")
				if href == "" {
					continue
				}
				concept := conceptFromLocator(href)
				if concept == "" || seen[concept] {
					continue
				}
				seen[concept] = true
				concepts = append(concepts, concept)
			}

		case xml.EndElement:
			if elem.Name.Local == "calculationLink" && inBlock {
				appendConcepts(result, statement, concepts)
				inBlock = false
			}
		}
	}

	return result, nil
}

// MergeCalculation appends calculation-linkbase concepts missing from the
// presentation ordering after the presentation-derived rows: some filers
// omit a line item from the display hierarchy but still include it in the
// arithmetic rollup, and it must still surface as a row. A nil calculation
// map (missing or unreadable file) leaves the presentation ordering as-is.
func MergeCalculation(presentation, calculation map[Statement][]string) map[Statement][]string {
	merged := make(map[Statement][]string, len(presentation))
	for statement, concepts := range presentation {
		merged[statement] = append([]string(nil), concepts...)
	}

	for statement, concepts := range calculation {
		appendConcepts(merged, statement, concepts)
	}

	return merged
}
