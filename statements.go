package xbrl

import "sort"

// StatementTable is one assembled financial statement: rows are concepts in
// presentation-then-calculation order, columns are the distinct reporting
// dates among the statement's facts sorted most recent first, and cells hold
// a value or nothing. Absent is not zero: a concept simply not reported for
// a date must render blank. Tables are never mutated after construction.
type StatementTable struct {
	Name  string
	Rows  []string
	Dates []string
	Cells map[string]map[string]float64
}

// Value returns the cell for one concept and date, reporting presence
// explicitly.
func (t *StatementTable) Value(concept, date string) (float64, bool) {
	row, ok := t.Cells[concept]
	if !ok {
		return 0, false
	}
	v, ok := row[date]
	return v, ok
}

// StatementSet is the complete output of one extraction run: the recognized
// statements that had at least one matching fact, plus the consolidated
// "All Facts" audit table built from every resolved concept.
type StatementSet struct {
	Tables   map[Statement]*StatementTable
	AllFacts *StatementTable
}

// Statements returns the non-empty tables in canonical statement order.
func (s *StatementSet) Statements() []*StatementTable {
	var tables []*StatementTable
	for _, name := range CanonicalStatements {
		if t, ok := s.Tables[name]; ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// BuildStatements joins the extracted facts against the merged per-statement
// concept orderings. Facts bound to segmented contexts are dropped: a
// per-geography breakdown summed into a consolidated total would corrupt it.
// Duplicate tags for the same concept and date are not uncommon; the first
// value seen wins.
func BuildStatements(inst *Instance, order map[Statement][]string) *StatementSet {
	cells := make(map[string]map[string]float64)
	var conceptOrder []string // first-seen order, for the audit table

	for _, fact := range inst.Facts {
		ctx, ok := inst.Contexts[fact.ContextRef]
		if !ok || ctx.Segmented {
			continue
		}
		date := ctx.Period.ReportDate()
		if date == "" {
			continue
		}

		row, ok := cells[fact.Concept]
		if !ok {
			row = make(map[string]float64)
			cells[fact.Concept] = row
			conceptOrder = append(conceptOrder, fact.Concept)
		}
		if _, dup := row[date]; dup {
			continue // first-wins
		}
		row[date] = fact.Value
	}

	set := &StatementSet{Tables: make(map[Statement]*StatementTable)}

	for statement, concepts := range order {
		table := buildTable(string(statement), concepts, cells)
		if len(table.Rows) == 0 {
			continue // zero rows is a filing-quality artifact, not an error
		}
		set.Tables[statement] = table
	}

	set.AllFacts = buildTable("All Facts", conceptOrder, cells)

	return set
}

// buildTable reindexes the joined cells to one ordered concept list. Rows
// for concepts with no facts are omitted, not zero-filled.
func buildTable(name string, rowOrder []string, cells map[string]map[string]float64) *StatementTable {
	table := &StatementTable{
		Name:  name,
		Cells: make(map[string]map[string]float64),
	}

	dateSet := make(map[string]bool)
	for _, concept := range rowOrder {
		row, ok := cells[concept]
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, concept)
		table.Cells[concept] = row
		for date := range row {
			dateSet[date] = true
		}
	}

	table.Dates = make([]string, 0, len(dateSet))
	for date := range dateSet {
		table.Dates = append(table.Dates, date)
	}
	// ISO dates sort lexically; columns run most recent first.
	sort.Sort(sort.Reverse(sort.StringSlice(table.Dates)))

	return table
}
