package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"agrisight/internal"
	"agrisight/internal/config"
	"agrisight/internal/storage"
)

// Analyzer runs the full analysis pipeline over raw record batches. It holds
// only read-only state (config-derived thresholds and the catalog reverse
// index), so one value can serve concurrent requests. DB is optional; when
// set, each analysis records a run row.
type Analyzer struct {
	Index      map[string]string
	Thresholds StockThresholds
	TopN       int

	LowStockDemandUnits float64
	LowStockDemandPct   float64

	DB *storage.DB
}

func NewAnalyzer(cfg config.Config, index map[string]string) *Analyzer {
	return &Analyzer{
		Index:               index,
		Thresholds:          ThresholdsFrom(cfg),
		TopN:                cfg.TopN,
		LowStockDemandUnits: cfg.LowStockDemandUnits,
		LowStockDemandPct:   cfg.LowStockDemandPct,
	}
}

// AnalyzeSales runs normalize, decode, classify, derive, aggregate and
// insight extraction over a raw batch.
func (a *Analyzer) AnalyzeSales(records []internal.Record) (*internal.SalesAnalysis, error) {
	started := time.Now()

	normalized := NormalizeRecords(records)
	rows, skipped, err := DecodeSalesRows(normalized)
	if err != nil {
		return nil, err
	}
	rows = ClassifySalesRows(rows, a.Index)
	rows = DeriveSalesMetrics(rows)

	out := &internal.SalesAnalysis{
		Rows:        rows,
		Companies:   AggregateSalesByCompany(rows),
		Products:    AggregateSalesByProduct(rows),
		TaxRates:    AggregateByTaxRate(rows),
		SkippedRows: skipped,

		TopPerformers:    TopByPerformance(rows, a.TopN),
		BottomPerformers: BottomPerformers(rows, a.TopN),
	}
	out.Insights = SalesInsights(rows, out.Companies)

	for _, row := range rows {
		out.TotalQuantity += row.Qty
		out.TotalRevenue += row.TaxableAmount
		out.TotalTax += row.TaxAmount
		out.GrandTotal += row.TotalWithTax
		if row.Company == internal.OtherCompany {
			out.Uncategorized++
		} else {
			out.Categorized++
		}
	}
	out.CompanyCount = len(out.Companies)

	a.recordRun(string(internal.ModeSales), map[string]int{
		"rows":    len(rows),
		"skipped": skipped,
	}, started)
	return out, nil
}

// AnalyzeStock is the stock-mode counterpart of AnalyzeSales.
func (a *Analyzer) AnalyzeStock(records []internal.Record) (*internal.StockAnalysis, error) {
	started := time.Now()

	normalized := NormalizeRecords(records)
	rows, skipped, err := DecodeStockRows(normalized)
	if err != nil {
		return nil, err
	}
	rows = ClassifyStockRows(rows, a.Index)
	rows = DeriveStockMetrics(rows, a.Thresholds)

	out := &internal.StockAnalysis{
		Rows:        rows,
		Companies:   AggregateStockByCompany(rows),
		Overview:    StockOverviewOf(rows),
		SkippedRows: skipped,

		FastMovers:         FastMovers(rows, a.TopN),
		SlowMovers:         SlowMovers(rows, a.TopN),
		DeadStock:          DeadStockRows(rows),
		NegativeStock:      NegativeStockRows(rows),
		Overstocked:        OverstockedRows(rows),
		OutOfStock:         OutOfStockRows(rows),
		LowStockHighDemand: LowStockHighDemand(rows, a.LowStockDemandUnits, a.LowStockDemandPct),
	}
	out.Insights = StockInsights(rows, out.Overview)

	a.recordRun(string(internal.ModeStock), map[string]int{
		"rows":    len(rows),
		"skipped": skipped,
	}, started)
	return out, nil
}

func (a *Analyzer) recordRun(mode string, counts map[string]int, started time.Time) {
	if a.DB == nil {
		return
	}
	timings := map[string]float64{"total_ms": float64(time.Since(started).Milliseconds())}
	if err := a.DB.InsertRun(uuid.NewString(), mode, counts, timings); err != nil {
		fmt.Printf("record run error: %v\n", err)
	}
}
