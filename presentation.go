package xbrl

import (
	"encoding/xml"
	"io"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
)

// PresentationArc is one parent-to-child relationship within one role, still
// in label space. Order is the sibling sort key; ties are broken by document
// order.
type PresentationArc struct {
	From  string
	To    string
	Order float64
}

// presentationBlock accumulates one presentationLink element while walking
// the linkbase. Labels are the role-local xlink handles the arcs point at;
// they resolve to concepts through the block's loc declarations.
type presentationBlock struct {
	statement Statement
	labels    map[string]string // xlink label -> concept
	arcs      []PresentationArc // document order
}

// ParsePresentation parses the presentation linkbase into a per-statement
// ordered concept list. Roles that do not classify to a primary statement
// (disclosure notes, parentheticals, policy blocks: the dominant share of
// roles in a real filing) are skipped entirely. Arcs referencing labels with
// no loc declaration are dropped; roles yielding no rows are absent from the
// result.
func ParsePresentation(data []byte) (map[Statement][]string, error) {
	return parseLinkbase(data, "presentationLink", "presentationArc")
}

// parseLinkbase implements the shared walk over presentation and calculation
// linkbases: both are per-role blocks of loc declarations plus arcs, and the
// two passes must classify roles identically for their outputs to merge.
func parseLinkbase(data []byte, linkElem, arcElem string) (map[Statement][]string, error) {
	result := make(map[Statement][]string)
	sawLink := false

	var current *presentationBlock

	decoder := newDecoder(data)
	for {
		token, err := decoder.Token()
		if err != nil {
			if err != io.EOF && !sawLink {
				return nil, eris.Wrap(err, "parse linkbase")
			}
			break
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case linkElem:
				sawLink = true
				statement, ok := ClassifyRole(getAttr(elem.Attr, "role"))
				if !ok {
					if err := decoder.Skip(); err != nil {
						return result, nil
					}
					continue
				}
				current = &presentationBlock{
					statement: statement,
					labels:    make(map[string]string),
				}

			case "loc":
				if current == nil {
					continue
				}
				label := getAttr(elem.Attr, "label")
				href := getAttr(elem.Attr, "href")
				if label == "" || href == "" {
					continue
				}
				current.labels[label] = conceptFromLocator(href)

			case arcElem:
				if current == nil {
					continue
				}
				order := 0.0
				if raw := getAttr(elem.Attr, "order"); raw != "" {
					if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
						order = parsed
					}
				}
				current.arcs = append(current.arcs, PresentationArc{
					From:  getAttr(elem.Attr, "from"),
					To:    getAttr(elem.Attr, "to"),
					Order: order,
				})
			}

		case xml.EndElement:
			if elem.Name.Local == linkElem && current != nil {
				appendConcepts(result, current.statement, current.flatten())
				current = nil
			}
		}
	}

	return result, nil
}

// appendConcepts merges a role block's ordered concepts into the statement's
// list, keeping first-seen order when a filing splits one statement across
// several role blocks.
func appendConcepts(result map[Statement][]string, statement Statement, concepts []string) {
	if len(concepts) == 0 {
		return
	}
	existing := make(map[string]bool, len(result[statement]))
	for _, c := range result[statement] {
		existing[c] = true
	}
	for _, c := range concepts {
		if !existing[c] {
			existing[c] = true
			result[statement] = append(result[statement], c)
		}
	}
}

// childRef is one resolved child edge under a parent concept.
type childRef struct {
	concept string
	order   float64
	seq     int
}

// flatten resolves the block's arcs to concept space and produces the
// pre-order depth-first row ordering: roots in document order, children by
// arc order ascending (document order on ties).
func (b *presentationBlock) flatten() []string {
	children := make(map[string][]childRef)
	hasIncoming := make(map[string]bool)
	var rootOrder []string
	seenSource := make(map[string]bool)

	for i, arc := range b.arcs {
		parent, ok := b.labels[arc.From]
		if !ok {
			continue // unresolvable source label; drop the arc
		}
		child, ok := b.labels[arc.To]
		if !ok {
			continue
		}
		children[parent] = append(children[parent], childRef{
			concept: child,
			order:   arc.Order,
			seq:     i,
		})
		hasIncoming[child] = true
		if !seenSource[parent] {
			seenSource[parent] = true
			rootOrder = append(rootOrder, parent)
		}
	}

	for parent := range children {
		kids := children[parent]
		sort.SliceStable(kids, func(i, j int) bool {
			if kids[i].order != kids[j].order {
				return kids[i].order < kids[j].order
			}
			return kids[i].seq < kids[j].seq
		})
		children[parent] = kids
	}

	// Roots are source concepts with no incoming arc within this role.
	var roots []string
	for _, concept := range rootOrder {
		if !hasIncoming[concept] {
			roots = append(roots, concept)
		}
	}

	// Iterative pre-order traversal with a visited guard: the design assumes
	// a forest, but malformed filings can contain cyclic arcs and must not
	// recurse unboundedly.
	var ordered []string
	visited := make(map[string]bool)

	for _, root := range roots {
		stack := []string{root}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if visited[node] {
				continue
			}
			visited[node] = true
			ordered = append(ordered, node)

			kids := children[node]
			for i := len(kids) - 1; i >= 0; i-- {
				if !visited[kids[i].concept] {
					stack = append(stack, kids[i].concept)
				}
			}
		}
	}

	return ordered
}
