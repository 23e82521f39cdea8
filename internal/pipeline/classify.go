package pipeline

import (
	"strings"

	"agrisight/internal"
)

// Classify resolves a product name to its company via exact, case-sensitive
// lookup. Catalog entries are trimmed at load time; the row side is trimmed
// here so the two sides compare on equal footing. No match means Other.
// Classification is per-row and order-independent.
func Classify(name string, index map[string]string) string {
	if company, ok := index[strings.TrimSpace(name)]; ok {
		return company
	}
	return internal.OtherCompany
}

// ClassifySalesRows returns a new slice with the company field populated;
// the input is not mutated.
func ClassifySalesRows(rows []internal.SalesRow, index map[string]string) []internal.SalesRow {
	out := make([]internal.SalesRow, len(rows))
	for i, row := range rows {
		row.Company = Classify(row.Name, index)
		out[i] = row
	}
	return out
}

// ClassifyStockRows is the stock-mode counterpart of ClassifySalesRows.
func ClassifyStockRows(rows []internal.StockRow, index map[string]string) []internal.StockRow {
	out := make([]internal.StockRow, len(rows))
	for i, row := range rows {
		row.Company = Classify(row.Name, index)
		out[i] = row
	}
	return out
}
