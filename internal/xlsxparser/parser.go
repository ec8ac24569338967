// =============================================================================
// Roof Adjustment Engine - XLSX Table Parser
// =============================================================================
//
// This module reads a worksheet of an .xlsx workbook as a header row plus
// data rows. It is used for price catalogs maintained directly in Excel
// instead of being exported to CSV.
//
// SHEET STRUCTURE (Expected):
//
//   | Description                   | Unit | Unit Price |
//   |-------------------------------|------|------------|
//   | Drip edge/gutter apron        | LF   | 3.10       |
//   | R&R Valley metal              | LF   | 7.25       |
//
// Leading blank rows are skipped; the first non-empty row is the header.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// SHEET STRUCTURE
// =============================================================================

// Sheet is a parsed worksheet.
type Sheet struct {
	// SourceFile is the path to the workbook.
	SourceFile string

	// Name is the worksheet name that was read.
	Name string

	// Headers are the trimmed values of the header row.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads one worksheet of an XLSX workbook.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//   - sheetName: The worksheet to read. Empty selects the first sheet.
//
// RETURNS:
//   - A pointer to the Sheet.
//   - An error if the workbook cannot be opened or the sheet is missing.
func Parse(path, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheetName, err)
	}

	sheet := &Sheet{
		SourceFile: path,
		Name:       sheetName,
		Rows:       []map[string]string{},
	}

	headerIndex := -1
	for i, row := range rows {
		if !isRowEmpty(row) {
			headerIndex = i
			break
		}
	}
	if headerIndex < 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	sheet.Headers = make([]string, len(rows[headerIndex]))
	for i, h := range rows[headerIndex] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		sheet.Headers[i] = h
	}

	for _, row := range rows[headerIndex+1:] {
		// GetRows drops trailing empty cells, so short rows are normal.
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(sheet.Headers))
		for col, header := range sheet.Headers {
			value := ""
			if col < len(row) {
				value = strings.TrimSpace(row[col])
			}
			rowMap[header] = value
		}
		sheet.Rows = append(sheet.Rows, rowMap)
	}

	return sheet, nil
}

// SheetNames lists the worksheets of a workbook in order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
