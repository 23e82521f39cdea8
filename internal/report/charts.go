package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"agrisight/internal"
)

const maxChartBars = 10

// Chart is one rendered PNG with a stable key used by API responses and
// report embedding.
type Chart struct {
	Key   string
	Title string
	PNG   []byte
}

// SalesCharts renders the standard sales chart set: top products by revenue
// and by quantity, and company revenue. Batches too small to chart are
// skipped rather than failed.
func SalesCharts(a *internal.SalesAnalysis) ([]Chart, error) {
	var out []Chart

	revenueBars := make([]chart.Value, 0, maxChartBars)
	qtyBars := make([]chart.Value, 0, maxChartBars)
	for i, p := range a.Products {
		if i >= maxChartBars {
			break
		}
		revenueBars = append(revenueBars, chart.Value{Label: shortLabel(p.Name), Value: p.TotalRevenue})
	}
	for i, p := range topProductsByQty(a.Products) {
		if i >= maxChartBars {
			break
		}
		qtyBars = append(qtyBars, chart.Value{Label: shortLabel(p.Name), Value: p.TotalQuantity})
	}

	companyBars := make([]chart.Value, 0, len(a.Companies))
	for _, c := range a.Companies {
		companyBars = append(companyBars, chart.Value{Label: shortLabel(c.Company), Value: c.TotalRevenue})
	}

	for _, def := range []struct {
		key, title string
		bars       []chart.Value
	}{
		{"top_products_revenue", "Top Products by Revenue", revenueBars},
		{"top_products_quantity", "Top Products by Quantity", qtyBars},
		{"company_revenue", "Revenue by Company", companyBars},
	} {
		png, err := renderBarChart(def.title, def.bars)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", def.key, err)
		}
		if png != nil {
			out = append(out, Chart{Key: def.key, Title: def.title, PNG: png})
		}
	}
	return out, nil
}

// StockCharts renders the stock chart set: company closing stock bars plus
// status and movement pies.
func StockCharts(a *internal.StockAnalysis) ([]Chart, error) {
	var out []Chart

	companyBars := make([]chart.Value, 0, len(a.Companies))
	for _, c := range a.Companies {
		companyBars = append(companyBars, chart.Value{Label: shortLabel(c.Company), Value: c.ClosingStock})
	}
	png, err := renderBarChart("Closing Stock by Company", companyBars)
	if err != nil {
		return nil, fmt.Errorf("render company_closing: %w", err)
	}
	if png != nil {
		out = append(out, Chart{Key: "company_closing", Title: "Closing Stock by Company", PNG: png})
	}

	ov := a.Overview
	statusValues := []chart.Value{
		{Label: "Out of Stock", Value: float64(ov.OutOfStock)},
		{Label: "In Stock", Value: float64(ov.InStock)},
	}
	movementValues := []chart.Value{
		{Label: "Fast", Value: float64(ov.FastMoving)},
		{Label: "Medium", Value: float64(ov.MediumMoving)},
		{Label: "Slow", Value: float64(ov.SlowMoving)},
		{Label: "None", Value: float64(ov.NoMovement)},
	}

	for _, def := range []struct {
		key, title string
		values     []chart.Value
	}{
		{"stock_status", "Stock Status", statusValues},
		{"stock_movement", "Movement Breakdown", movementValues},
	} {
		png, err := renderPieChart(def.title, def.values)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", def.key, err)
		}
		if png != nil {
			out = append(out, Chart{Key: def.key, Title: def.title, PNG: png})
		}
	}
	return out, nil
}

func renderBarChart(title string, bars []chart.Value) ([]byte, error) {
	if len(bars) == 0 {
		return nil, nil
	}

	c := chart.BarChart{
		Title:    title,
		Width:    900,
		Height:   450,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPieChart(title string, values []chart.Value) ([]byte, error) {
	nonZero := make([]chart.Value, 0, len(values))
	for _, v := range values {
		if v.Value > 0 {
			nonZero = append(nonZero, v)
		}
	}
	if len(nonZero) == 0 {
		return nil, nil
	}

	c := chart.PieChart{
		Title:  title,
		Width:  500,
		Height: 500,
		Values: nonZero,
	}

	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func topProductsByQty(products []internal.ProductSummary) []internal.ProductSummary {
	sorted := append([]internal.ProductSummary(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TotalQuantity > sorted[j].TotalQuantity })
	return sorted
}

func shortLabel(s string) string {
	const max = 18
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
