package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"agrisight/internal"
	"agrisight/internal/util"
)

// columnAliases maps the field names seen in the wild (legacy accounting
// exports, spreadsheet headers, n8n payloads) to canonical column names.
// Keys are matched case-insensitively after trimming.
var columnAliases = map[string]string{
	"NAMT":          internal.ColTaxable,
	"PER":           internal.ColTaxRate,
	"ITEM NAME":     internal.ColName,
	"ITEMNAME":      internal.ColName,
	"PRODUCT":       internal.ColName,
	"PRODUCT NAME":  internal.ColName,
	"QUANTITY":      internal.ColQty,
	"OPENING":       internal.ColOpening,
	"OPENING STOCK": internal.ColOpening,
	"CLOSING":       internal.ColClosing,
	"CLOSING STOCK": internal.ColClosing,
}

// MissingColumnError is batch-fatal: percentiles and normalization are
// batch-wide, so a batch without a required column cannot be partially
// analyzed.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

// NormalizeRecords maps alias field names onto canonical ones. Canonical
// names already present are never overwritten by an alias.
func NormalizeRecords(records []internal.Record) []internal.Record {
	out := make([]internal.Record, 0, len(records))
	for _, rec := range records {
		norm := make(internal.Record, len(rec))
		for key, value := range rec {
			canon := strings.ToUpper(strings.TrimSpace(key))
			if alias, ok := columnAliases[canon]; ok {
				canon = alias
			}
			if _, exists := norm[canon]; !exists {
				norm[canon] = value
			}
		}
		out = append(out, norm)
	}
	return out
}

// DetectMode picks sales vs stock analysis from the columns present in the
// first record of a normalized batch.
func DetectMode(records []internal.Record) internal.AnalysisMode {
	for _, rec := range records {
		if _, ok := rec[internal.ColOutward]; ok {
			return internal.ModeStock
		}
		if _, ok := rec[internal.ColClosing]; ok {
			return internal.ModeStock
		}
		return internal.ModeSales
	}
	return internal.ModeSales
}

// DecodeSalesRows turns normalized records into typed sales rows. A column
// missing from the whole batch fails the batch; a malformed value in a
// single row skips that row and counts it.
func DecodeSalesRows(records []internal.Record) ([]internal.SalesRow, int, error) {
	if err := requireColumns(records, internal.ColName, internal.ColQty, internal.ColTaxable, internal.ColTaxRate); err != nil {
		return nil, 0, err
	}

	rows := make([]internal.SalesRow, 0, len(records))
	skipped := 0
	for _, rec := range records {
		name := strings.TrimSpace(stringValue(rec[internal.ColName]))
		qty, okQty := util.ParseNumber(rec[internal.ColQty])
		taxable, okTaxable := util.ParseNumber(rec[internal.ColTaxable])
		rate, okRate := util.ParseNumber(rec[internal.ColTaxRate])
		if name == "" || !okQty || !okTaxable || !okRate {
			skipped++
			continue
		}
		rows = append(rows, internal.SalesRow{
			Name:          name,
			Qty:           qty,
			TaxableAmount: taxable,
			TaxRate:       rate,
		})
	}
	return rows, skipped, nil
}

// DecodeStockRows is the stock-mode counterpart of DecodeSalesRows. TOTAL is
// derived as opening+inward when the column is absent or blank.
func DecodeStockRows(records []internal.Record) ([]internal.StockRow, int, error) {
	if err := requireColumns(records, internal.ColName, internal.ColOpening, internal.ColInward, internal.ColOutward, internal.ColClosing); err != nil {
		return nil, 0, err
	}

	rows := make([]internal.StockRow, 0, len(records))
	skipped := 0
	for _, rec := range records {
		name := strings.TrimSpace(stringValue(rec[internal.ColName]))
		opening, okOpening := util.ParseNumber(rec[internal.ColOpening])
		inward, okInward := util.ParseNumber(rec[internal.ColInward])
		outward, okOutward := util.ParseNumber(rec[internal.ColOutward])
		closing, okClosing := util.ParseNumber(rec[internal.ColClosing])
		if name == "" || !okOpening || !okInward || !okOutward || !okClosing {
			skipped++
			continue
		}

		total, okTotal := util.ParseNumber(rec[internal.ColTotal])
		if !okTotal {
			total = opening + inward
		}

		rows = append(rows, internal.StockRow{
			Name:    name,
			Opening: opening,
			Inward:  inward,
			Total:   total,
			Outward: outward,
			Closing: closing,
		})
	}
	return rows, skipped, nil
}

// requireColumns fails when no record in the batch carries the column.
// Individual records missing a value are handled row-locally by the decoders.
func requireColumns(records []internal.Record, columns ...string) error {
	if len(records) == 0 {
		return nil
	}

	present := map[string]bool{}
	for _, rec := range records {
		for key := range rec {
			present[key] = true
		}
	}

	for _, col := range columns {
		if !present[col] {
			available := make([]string, 0, len(present))
			for key := range present {
				available = append(available, key)
			}
			sort.Strings(available)
			return &MissingColumnError{Column: col, Available: available}
		}
	}
	return nil
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
