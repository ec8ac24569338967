// =============================================================================
// Roof Adjustment Engine - Catalog Loader
// =============================================================================
//
// This module turns a price catalog file into a *catalog.Catalog.
//
// LOADING PROCESS:
//   1. Walk the configured search paths; the first existing file wins
//   2. Read it as XLSX (by extension) or as delimited text (sniffed)
//   3. Map columns by normalised header name (lower case, spaces -> "_")
//   4. Convert each row into a catalog entry, skipping bad rows
//
// REQUIRED COLUMNS:
//   description, unit, unit_price   ("Unit Price" and "UNIT PRICE" also work)
//
// Loading never aborts the caller: a missing or unreadable catalog yields an
// empty catalog and a warning, in which case every item prices at zero.
//
// =============================================================================

package catalogloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/config"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/csvparser"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/xlsxparser"
	"github.com/ginjaninja78/roof-adjustment-engine/pkg/utils"
)

// Required column names after normalisation.
const (
	colDescription = "description"
	colUnit        = "unit"
	colUnitPrice   = "unit_price"
)

// MissingColumnsError is returned by LoadFile when the header row lacks one
// of the required columns.
type MissingColumnsError struct {
	Path    string
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing required columns %v (found %v)", e.Path, e.Missing, e.Found)
}

// Load returns the catalog from the first existing file in paths. It never
// fails: when no file exists, or the file cannot be read, the result is an
// empty catalog and the problem is logged as a warning.
func Load(paths []string, settings config.CSVSettings, log logging.Logger) *catalog.Catalog {
	if log == nil {
		log = logging.Nop()
	}

	for _, path := range paths {
		if !utils.FileExists(path) {
			log.Debug("Catalog not found at %s", path)
			continue
		}

		cat, err := LoadFile(path, settings, log)
		if err != nil {
			log.Warn("Failed to load catalog %s: %v", path, err)
			return catalog.Empty()
		}

		log.Info("Loaded %d catalog items from %s", cat.Len(), path)
		return cat
	}

	log.Warn("No price catalog found in %v; all lookups will price at 0", paths)
	return catalog.Empty()
}

// LoadFile reads a single catalog file. Rows with a missing description or
// an unparsable or non-positive price are skipped with a warning; structural
// problems (unreadable file, missing columns) are returned as errors.
func LoadFile(path string, settings config.CSVSettings, log logging.Logger) (*catalog.Catalog, error) {
	if log == nil {
		log = logging.Nop()
	}

	var (
		headers []string
		rows    []map[string]string
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		sheet, err := xlsxparser.Parse(path, settings.Sheet)
		if err != nil {
			return nil, err
		}
		headers, rows = sheet.Headers, sheet.Rows
	default:
		data, err := csvparser.Parse(path, settings)
		if err != nil {
			return nil, err
		}
		headers, rows = data.Headers, data.Rows
	}

	return FromRows(path, headers, rows, log)
}

// FromRows builds a catalog from parsed rows keyed by their original header
// names.
func FromRows(source string, headers []string, rows []map[string]string, log logging.Logger) (*catalog.Catalog, error) {
	if log == nil {
		log = logging.Nop()
	}

	columns := make(map[string]string, len(headers))
	for _, h := range headers {
		key := NormalizeHeader(h)
		if _, ok := columns[key]; !ok {
			columns[key] = h
		}
	}

	var missing []string
	for _, required := range []string{colDescription, colUnit, colUnitPrice} {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Path: source, Missing: missing, Found: headers}
	}

	entries := make([]catalog.Entry, 0, len(rows))
	for i, row := range rows {
		// Row 1 is the header.
		rowNumber := i + 2

		description := strings.TrimSpace(row[columns[colDescription]])
		if description == "" {
			log.Warn("%s row %d: empty description, skipped", source, rowNumber)
			continue
		}

		price, err := ParsePrice(row[columns[colUnitPrice]])
		if err != nil {
			log.Warn("%s row %d (%s): %v, skipped", source, rowNumber, description, err)
			continue
		}
		if !price.IsPositive() {
			log.Warn("%s row %d (%s): price %s is not positive, skipped", source, rowNumber, description, price)
			continue
		}

		entries = append(entries, catalog.Entry{
			Description: description,
			Unit:        strings.ToUpper(strings.TrimSpace(row[columns[colUnit]])),
			UnitPrice:   price.InexactFloat64(),
		})
	}

	return catalog.New(source, entries), nil
}

// NormalizeHeader lower-cases a header and joins words with underscores,
// so "Unit Price" and " UNIT  PRICE " both become "unit_price".
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), "_")
}

// ParsePrice parses a catalog price cell such as "3.10", "$1,250.00" or
// " 45 ".
func ParsePrice(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty price")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", s)
	}
	return d, nil
}
