package pipeline

import (
	"strings"
	"testing"

	"agrisight/internal"
)

func TestSalesInsights(t *testing.T) {
	rows := DeriveSalesMetrics([]internal.SalesRow{
		{Name: "Agas 250gms", Company: "Adama", Qty: 10, TaxableAmount: 600, TaxRate: 18},
		{Name: "Bakeel 250ml", Company: "Gharda", Qty: 3, TaxableAmount: 900, TaxRate: 18},
	})
	companies := AggregateSalesByCompany(rows)

	insights := SalesInsights(rows, companies)
	byKind := map[string]string{}
	for _, ins := range insights {
		byKind[ins.Kind] = ins.Text
	}

	if !strings.Contains(byKind["best_seller"], "Agas 250gms") {
		t.Fatalf("best seller: %q", byKind["best_seller"])
	}
	if !strings.Contains(byKind["top_revenue"], "Bakeel 250ml") {
		t.Fatalf("top revenue: %q", byKind["top_revenue"])
	}
	if !strings.Contains(byKind["top_company"], "Gharda") {
		t.Fatalf("top company: %q", byKind["top_company"])
	}
	if !strings.Contains(byKind["highest_unit_price"], "Bakeel 250ml") {
		t.Fatalf("highest unit price: %q", byKind["highest_unit_price"])
	}
	if !strings.Contains(byKind["lowest_unit_price"], "Agas 250gms") {
		t.Fatalf("lowest unit price: %q", byKind["lowest_unit_price"])
	}
	if byKind["grand_total"] == "" || byKind["totals"] == "" {
		t.Fatalf("missing headline insights: %v", byKind)
	}
}

func TestSalesInsightsEmptyBatch(t *testing.T) {
	if got := SalesInsights(nil, nil); got != nil {
		t.Fatalf("expected nil for empty batch, got %v", got)
	}
}

func TestStockInsightsAnomaliesOnlyWhenPresent(t *testing.T) {
	clean := DeriveStockMetrics([]internal.StockRow{
		{Name: "a", Total: 100, Outward: 80, Closing: 20},
	}, DefaultThresholds())
	insights := StockInsights(clean, StockOverviewOf(clean))
	for _, ins := range insights {
		if ins.Kind == "negative_stock" || ins.Kind == "dead_stock" || ins.Kind == "overstocked" {
			t.Fatalf("clean batch should not report %s", ins.Kind)
		}
	}

	dirty := DeriveStockMetrics([]internal.StockRow{
		{Name: "neg", Total: 1, Outward: 4, Closing: -3},
	}, DefaultThresholds())
	insights = StockInsights(dirty, StockOverviewOf(dirty))
	found := false
	for _, ins := range insights {
		if ins.Kind == "negative_stock" {
			found = true
		}
	}
	if !found {
		t.Fatalf("negative stock not reported: %v", insights)
	}
}

func TestFastAndSlowMovers(t *testing.T) {
	rows := DeriveStockMetrics([]internal.StockRow{
		{Name: "idle", Total: 50, Outward: 0, Closing: 50},
		{Name: "fast", Total: 100, Outward: 90, Closing: 10},
		{Name: "slow", Total: 100, Outward: 10, Closing: 90},
		{Name: "sold out", Total: 10, Outward: 10, Closing: 0},
	}, DefaultThresholds())

	fast := FastMovers(rows, 2)
	if len(fast) != 2 || fast[0].Name != "fast" {
		t.Fatalf("fast movers: %+v", fast)
	}
	for _, r := range fast {
		if r.Outward == 0 {
			t.Fatalf("idle row in fast movers")
		}
	}

	slow := SlowMovers(rows, 5)
	if len(slow) != 2 || slow[0].Name != "slow" {
		t.Fatalf("slow movers: %+v", slow)
	}
	for _, r := range slow {
		if r.Closing <= 0 {
			t.Fatalf("sold-out row in slow movers")
		}
	}
}

func TestLowStockHighDemand(t *testing.T) {
	rows := DeriveStockMetrics([]internal.StockRow{
		{Name: "hot", Total: 100, Outward: 95, Closing: 5},
		{Name: "cold", Total: 100, Outward: 10, Closing: 5},
		{Name: "plenty", Total: 100, Outward: 60, Closing: 40},
	}, DefaultThresholds())

	got := LowStockHighDemand(rows, 10, 50)
	if len(got) != 1 || got[0].Name != "hot" {
		t.Fatalf("low stock high demand: %+v", got)
	}
}

func TestAnomalyListOrdering(t *testing.T) {
	rows := DeriveStockMetrics([]internal.StockRow{
		{Name: "small dead", Opening: 2, Total: 2, Closing: 2},
		{Name: "big dead", Opening: 90, Total: 90, Closing: 90},
		{Name: "slightly neg", Total: 1, Outward: 2, Closing: -1},
		{Name: "very neg", Total: 1, Outward: 6, Closing: -5},
		{Name: "light over", Total: 300, Outward: 30, Closing: 110},
		{Name: "heavy over", Total: 500, Outward: 50, Closing: 450},
	}, DefaultThresholds())

	dead := DeadStockRows(rows)
	if len(dead) != 2 || dead[0].Name != "big dead" || dead[1].Name != "small dead" {
		t.Fatalf("dead stock should sort closing desc: %+v", dead)
	}

	neg := NegativeStockRows(rows)
	if len(neg) != 2 || neg[0].Name != "very neg" || neg[1].Name != "slightly neg" {
		t.Fatalf("negative stock should sort closing asc: %+v", neg)
	}

	over := OverstockedRows(rows)
	if len(over) != 2 || over[0].Name != "heavy over" || over[1].Name != "light over" {
		t.Fatalf("overstocked should sort closing desc: %+v", over)
	}
}

func TestLowStockHighDemandOrdering(t *testing.T) {
	rows := DeriveStockMetrics([]internal.StockRow{
		{Name: "warm", Total: 100, Outward: 60, Closing: 5},
		{Name: "hot", Total: 100, Outward: 95, Closing: 5},
	}, DefaultThresholds())

	got := LowStockHighDemand(rows, 10, 50)
	if len(got) != 2 || got[0].Name != "hot" || got[1].Name != "warm" {
		t.Fatalf("should sort turnover desc: %+v", got)
	}
}

func TestOutOfStockRows(t *testing.T) {
	rows := DeriveStockMetrics([]internal.StockRow{
		{Name: "gone", Total: 10, Outward: 10, Closing: 0},
		{Name: "held", Total: 10, Outward: 5, Closing: 5},
		{Name: "neg", Total: 1, Outward: 4, Closing: -3},
	}, DefaultThresholds())

	got := OutOfStockRows(rows)
	if len(got) != 2 {
		t.Fatalf("out of stock: %+v", got)
	}
	for _, r := range got {
		if r.Closing > 0 {
			t.Fatalf("row with stock in out-of-stock list: %+v", r)
		}
	}
}

func TestTopAndBottomPerformers(t *testing.T) {
	rows := DeriveSalesMetrics([]internal.SalesRow{
		{Name: "low", Qty: 1, TaxableAmount: 100, TaxRate: 18},
		{Name: "mid", Qty: 5, TaxableAmount: 500, TaxRate: 18},
		{Name: "high", Qty: 10, TaxableAmount: 1000, TaxRate: 18},
	})

	top := TopByPerformance(rows, 2)
	if len(top) != 2 || top[0].Name != "high" || top[1].Name != "mid" {
		t.Fatalf("top performers: %+v", top)
	}

	bottom := BottomPerformers(rows, 2)
	if len(bottom) != 2 || bottom[0].Name != "low" || bottom[1].Name != "mid" {
		t.Fatalf("bottom performers: %+v", bottom)
	}
}

func TestTopByRevenueStableTies(t *testing.T) {
	rows := []internal.SalesRow{
		{Name: "first", TaxableAmount: 100},
		{Name: "second", TaxableAmount: 100},
		{Name: "big", TaxableAmount: 200},
	}
	top := TopByRevenue(rows, 2)
	if top[0].Name != "big" || top[1].Name != "first" {
		t.Fatalf("tie should keep first occurrence: %+v", top)
	}
}
