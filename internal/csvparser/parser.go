// =============================================================================
// Roof Adjustment Engine - Delimited Text Parser
// =============================================================================
//
// This module reads delimited text tables such as the roof master price
// catalog. Catalog exports arrive in several dialects:
//   - Tab separated (the spreadsheet "Text (Tab delimited)" export)
//   - Comma separated, with quoted descriptions containing commas
//   - Semicolon or pipe separated from regional spreadsheet settings
//
// FEATURES:
//   - Delimiter sniffing from the first KiB of the file
//   - Explicit delimiter override via CSVSettings
//   - Tolerant quoting (LazyQuotes) and ragged rows
//   - Empty rows skipped, cells trimmed
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/config"
)

// sniffSize is how much of the file is inspected to pick a delimiter.
const sniffSize = 1024

// candidates are the delimiters considered when sniffing, in preference order.
var candidates = []rune{'\t', ',', ';', '|'}

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents a parsed delimited file.
type CSVData struct {
	// Headers contains the cleaned column headers from the first row.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// SourceFile is the path to the source file ("" when parsed from a reader).
	SourceFile string

	// Delimiter is the delimiter actually used.
	Delimiter rune

	// RowCount is the number of non-empty data rows.
	RowCount int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a delimited file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the file.
//   - settings: The delimiter settings. "auto" sniffs the delimiter.
//
// RETURNS:
//   - A pointer to the CSVData struct containing the parsed data.
//   - An error if the file cannot be read or parsed.
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(file, settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath
	return data, nil
}

// ParseReader parses delimited text from r.
func ParseReader(r io.Reader, settings config.CSVSettings) (*CSVData, error) {
	reader := bufio.NewReader(r)

	// Peek returns what it has along with io.EOF for short inputs.
	sample, err := reader.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	// A UTF-8 BOM would otherwise end up glued to the first header.
	if bytes.HasPrefix(sample, []byte("\xef\xbb\xbf")) {
		_, _ = reader.Discard(3)
		sample = sample[3:]
	}

	delimiter := resolveDelimiter(settings.Delimiter, sample)

	csvReader := csv.NewReader(reader)
	configureReader(csvReader, delimiter)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := cleanHeaders(allRows[0])
	rows := extractDataRows(allRows[1:], headers)

	return &CSVData{
		Headers:   headers,
		Rows:      rows,
		Delimiter: delimiter,
		RowCount:  len(rows),
	}, nil
}

// resolveDelimiter maps the configured delimiter to a rune, sniffing the
// sample when the setting is "auto" or empty.
func resolveDelimiter(setting string, sample []byte) rune {
	switch strings.ToLower(setting) {
	case "\\t", "\t", "tab":
		return '\t'
	case "|", "pipe":
		return '|'
	case ";", "semicolon":
		return ';'
	case ",", "comma":
		return ','
	default:
		return SniffDelimiter(sample)
	}
}

// SniffDelimiter guesses the delimiter of a delimited text sample.
//
// Each candidate is counted per line, ignoring anything inside double
// quotes. A candidate that appears the same non-zero number of times on
// every complete line wins; ties go to the higher count, then to the
// earlier candidate. If no candidate is consistent the one most frequent
// on the header line is used, and comma is the final fallback.
func SniffDelimiter(sample []byte) rune {
	lines := strings.Split(strings.ReplaceAll(string(sample), "\r\n", "\n"), "\n")

	// The last line of a truncated sample is probably incomplete.
	if len(sample) >= sniffSize && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}

	var nonEmpty []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonEmpty = append(nonEmpty, line)
		}
	}
	if len(nonEmpty) == 0 {
		return ','
	}

	best, bestCount := rune(0), 0
	for _, c := range candidates {
		first := countOutsideQuotes(nonEmpty[0], c)
		if first == 0 {
			continue
		}
		consistent := true
		for _, line := range nonEmpty[1:] {
			if countOutsideQuotes(line, c) != first {
				consistent = false
				break
			}
		}
		if consistent && first > bestCount {
			best, bestCount = c, first
		}
	}
	if best != 0 {
		return best
	}

	for _, c := range candidates {
		if n := countOutsideQuotes(nonEmpty[0], c); n > bestCount {
			best, bestCount = c, n
		}
	}
	if best != 0 {
		return best
	}

	return ','
}

func countOutsideQuotes(line string, c rune) int {
	count := 0
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == c && !quoted:
			count++
		}
	}
	return count
}

// configureReader configures the CSV reader for the chosen delimiter.
func configureReader(reader *csv.Reader, delimiter rune) {
	reader.Comma = delimiter

	// Allow variable number of fields per row.
	reader.FieldsPerRecord = -1

	// Spreadsheet exports are not always strict about quotes.
	reader.LazyQuotes = true

	// Trimming would swallow empty cells when the delimiter is itself
	// whitespace. Cells are trimmed after reading either way.
	reader.TrimLeadingSpace = delimiter != '\t'
}

// cleanHeaders trims header values and names empty ones by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// extractDataRows converts rows to header -> value maps, skipping empty rows.
func extractDataRows(rows [][]string, headers []string) []map[string]string {
	dataRows := make([]map[string]string, 0, len(rows))

	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for colIndex, header := range headers {
			if colIndex < len(row) {
				rowMap[header] = strings.TrimSpace(row[colIndex])
			} else {
				rowMap[header] = ""
			}
		}

		dataRows = append(dataRows, rowMap)
	}

	return dataRows
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
