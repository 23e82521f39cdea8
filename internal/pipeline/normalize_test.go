package pipeline

import (
	"errors"
	"testing"

	"agrisight/internal"
)

func TestNormalizeRecordsAliases(t *testing.T) {
	records := []internal.Record{{
		"item name": "Agas 250gms",
		"Quantity":  "4",
		"NAMT":      "1000",
		"PER":       "18",
	}}

	got := NormalizeRecords(records)[0]
	for _, col := range []string{internal.ColName, internal.ColQty, internal.ColTaxable, internal.ColTaxRate} {
		if _, ok := got[col]; !ok {
			t.Fatalf("missing %s after normalization: %v", col, got)
		}
	}
}

func TestNormalizeRecordsKeepsCanonical(t *testing.T) {
	records := []internal.Record{{
		"ITNAME":  "canonical",
		"Product": "alias",
	}}

	got := NormalizeRecords(records)[0]
	if got[internal.ColName] != "canonical" {
		t.Fatalf("alias overwrote canonical column: %v", got)
	}
}

func TestDetectMode(t *testing.T) {
	sales := []internal.Record{{"ITNAME": "x", "QTY": 1, "TAXBLEAMT": 2, "GST": 18}}
	stock := []internal.Record{{"ITNAME": "x", "OPST": 1, "INWARD": 0, "OUTWARD": 0, "CLST": 1}}

	if got := DetectMode(sales); got != internal.ModeSales {
		t.Fatalf("sales batch detected as %s", got)
	}
	if got := DetectMode(stock); got != internal.ModeStock {
		t.Fatalf("stock batch detected as %s", got)
	}
	if got := DetectMode(nil); got != internal.ModeSales {
		t.Fatalf("empty batch detected as %s", got)
	}
}

func TestDecodeSalesRowsMissingColumn(t *testing.T) {
	records := []internal.Record{{"ITNAME": "x", "QTY": 1, "GST": 18}}

	_, _, err := DecodeSalesRows(records)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missing.Column != internal.ColTaxable {
		t.Fatalf("column=%q", missing.Column)
	}
	if len(missing.Available) == 0 {
		t.Fatalf("available columns not reported")
	}
}

func TestDecodeSalesRowsSkipsMalformed(t *testing.T) {
	records := []internal.Record{
		{"ITNAME": "good", "QTY": "4", "TAXBLEAMT": "1,234.50", "GST": "18"},
		{"ITNAME": "", "QTY": "4", "TAXBLEAMT": "100", "GST": "18"},
		{"ITNAME": "bad qty", "QTY": "n/a", "TAXBLEAMT": "100", "GST": "18"},
	}

	rows, skipped, err := DecodeSalesRows(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || skipped != 2 {
		t.Fatalf("rows=%d skipped=%d", len(rows), skipped)
	}
	if rows[0].TaxableAmount != 1234.50 {
		t.Fatalf("taxable=%v", rows[0].TaxableAmount)
	}
}

func TestDecodeStockRowsDerivesTotal(t *testing.T) {
	records := []internal.Record{
		{"ITNAME": "x", "OPST": "10", "INWARD": "5", "OUTWARD": "3", "CLST": "12"},
	}

	rows, skipped, err := DecodeStockRows(records)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 || len(rows) != 1 {
		t.Fatalf("rows=%d skipped=%d", len(rows), skipped)
	}
	if rows[0].Total != 15 {
		t.Fatalf("total=%v, want opening+inward", rows[0].Total)
	}
}

func TestDecodeEmptyBatch(t *testing.T) {
	rows, skipped, err := DecodeSalesRows(nil)
	if err != nil || len(rows) != 0 || skipped != 0 {
		t.Fatalf("rows=%d skipped=%d err=%v", len(rows), skipped, err)
	}
}
