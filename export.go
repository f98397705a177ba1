package xbrl

import (
	"io"
	"regexp"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// The export contract with the rendering side: row order is significant and
// preserved, columns are dates in descending order, and absent cells render
// blank, never zero.

var invalidSheetChars = regexp.MustCompile(`[:\\/?*\[\]]`)

// WriteWorkbook renders the statement set as a workbook: the consolidated
// "All Facts" sheet first, then one sheet per recognized statement in
// canonical order.
func WriteWorkbook(set *StatementSet) (*xlsx.File, error) {
	file := xlsx.NewFile()
	used := make(map[string]bool)

	if set.AllFacts != nil && len(set.AllFacts.Rows) > 0 {
		if err := writeSheet(file, used, set.AllFacts); err != nil {
			return nil, err
		}
	}

	for _, table := range set.Statements() {
		if err := writeSheet(file, used, table); err != nil {
			return nil, err
		}
	}

	if len(file.Sheets) == 0 {
		return nil, eris.New("no statements to export")
	}

	return file, nil
}

// ExportXLSX writes the statement set to an .xlsx file at path.
func ExportXLSX(set *StatementSet, path string) error {
	file, err := WriteWorkbook(set)
	if err != nil {
		return err
	}
	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "save workbook %s", path)
	}
	return nil
}

// WriteXLSX streams the workbook to a writer.
func WriteXLSX(set *StatementSet, w io.Writer) error {
	file, err := WriteWorkbook(set)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return eris.Wrap(err, "write workbook")
	}
	return nil
}

func writeSheet(file *xlsx.File, used map[string]bool, table *StatementTable) error {
	name := safeSheetName(table.Name, used)
	used[name] = true

	sheet, err := file.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "add sheet %s", name)
	}

	bold := xlsx.NewStyle()
	bold.Font.Bold = true
	bold.ApplyFont = true

	header := sheet.AddRow()
	cell := header.AddCell()
	cell.Value = "Line Item"
	cell.SetStyle(bold)
	for _, date := range table.Dates {
		cell := header.AddCell()
		cell.Value = date
		cell.SetStyle(bold)
	}

	for _, concept := range table.Rows {
		row := sheet.AddRow()
		row.AddCell().Value = HumanizeConcept(concept)
		for _, date := range table.Dates {
			cell := row.AddCell()
			if value, ok := table.Value(concept, date); ok {
				cell.SetFloat(value)
			}
			// absent stays blank
		}
	}

	sheet.SetColWidth(0, 0, 50)
	if len(table.Dates) > 0 {
		sheet.SetColWidth(1, len(table.Dates), 20)
	}

	return nil
}

// safeSheetName sanitizes a sheet title for Excel: invalid characters are
// replaced, names are capped at 31 characters, and collisions get a numeric
// suffix.
func safeSheetName(name string, used map[string]bool) string {
	name = invalidSheetChars.ReplaceAllString(name, "-")
	if len(name) > 31 {
		name = name[:31]
	}

	original := name
	for counter := 1; used[name]; counter++ {
		base := original
		if len(base) > 28 {
			base = base[:28]
		}
		name = base + "_" + strconv.Itoa(counter)
	}

	return name
}
