package pipeline

import (
	"fmt"
	"sort"

	"agrisight/internal"
)

// SalesInsights extracts the headline facts for a derived, aggregated sales
// batch. Ties break on first occurrence so equal inputs read the same way
// every run.
func SalesInsights(rows []internal.SalesRow, companies []internal.CompanySummary) []internal.Insight {
	if len(rows) == 0 {
		return nil
	}

	var totalQty, totalRevenue, grandTotal float64
	bestSeller := rows[0]
	topRevenue := rows[0]
	for _, row := range rows {
		totalQty += row.Qty
		totalRevenue += row.TaxableAmount
		grandTotal += row.TotalWithTax
		if row.Qty > bestSeller.Qty {
			bestSeller = row
		}
		if row.TaxableAmount > topRevenue.TaxableAmount {
			topRevenue = row
		}
	}

	insights := []internal.Insight{
		{Kind: "totals", Text: fmt.Sprintf("%d products sold, %.0f units total, revenue %.2f", len(rows), totalQty, totalRevenue)},
		{Kind: "best_seller", Text: fmt.Sprintf("Best seller: %s with %.0f units", bestSeller.Name, bestSeller.Qty)},
		{Kind: "top_revenue", Text: fmt.Sprintf("Highest revenue: %s at %.2f", topRevenue.Name, topRevenue.TaxableAmount)},
	}

	if len(companies) > 0 {
		top := companies[0]
		insights = append(insights, internal.Insight{
			Kind: "top_company",
			Text: fmt.Sprintf("Top company: %s with %.2f revenue (%.1f%% market share)", top.Company, top.TotalRevenue, top.MarketShare),
		})
	}

	priced := make([]internal.SalesRow, 0, len(rows))
	for _, row := range rows {
		if row.Qty > 0 {
			priced = append(priced, row)
		}
	}
	if len(priced) > 0 {
		highest, lowest := priced[0], priced[0]
		for _, row := range priced[1:] {
			if row.UnitPrice > highest.UnitPrice {
				highest = row
			}
			if row.UnitPrice < lowest.UnitPrice {
				lowest = row
			}
		}
		insights = append(insights,
			internal.Insight{Kind: "highest_unit_price", Text: fmt.Sprintf("Highest price per unit: %s at %.2f", highest.Name, highest.UnitPrice)},
			internal.Insight{Kind: "lowest_unit_price", Text: fmt.Sprintf("Lowest price per unit: %s at %.2f", lowest.Name, lowest.UnitPrice)},
		)
	}

	insights = append(insights, internal.Insight{
		Kind: "grand_total",
		Text: fmt.Sprintf("Grand total including tax: %.2f", grandTotal),
	})
	return insights
}

// StockInsights summarizes the health of a derived stock batch.
func StockInsights(rows []internal.StockRow, ov internal.StockOverview) []internal.Insight {
	if len(rows) == 0 {
		return nil
	}

	insights := []internal.Insight{
		{Kind: "overview", Text: fmt.Sprintf("%d products tracked, %.0f units closing stock, %.1f%% average turnover", ov.TotalProducts, ov.TotalClosing, ov.AvgTurnoverRatio)},
		{Kind: "health", Text: fmt.Sprintf("%d in stock, %d out of stock, %d fast moving, %d with no movement", ov.InStock, ov.OutOfStock, ov.FastMoving, ov.NoMovement)},
	}
	if ov.NegativeStock > 0 {
		insights = append(insights, internal.Insight{
			Kind: "negative_stock",
			Text: fmt.Sprintf("%d products show negative closing stock and need a recount", ov.NegativeStock),
		})
	}
	if ov.DeadStock > 0 {
		insights = append(insights, internal.Insight{
			Kind: "dead_stock",
			Text: fmt.Sprintf("%d products had no movement at all and hold idle inventory", ov.DeadStock),
		})
	}
	if ov.Overstocked > 0 {
		insights = append(insights, internal.Insight{
			Kind: "overstocked",
			Text: fmt.Sprintf("%d products are overstocked relative to their turnover", ov.Overstocked),
		})
	}
	return insights
}

// TopByPerformance returns the top-n sales rows by performance score,
// stable on ties.
func TopByPerformance(rows []internal.SalesRow, n int) []internal.SalesRow {
	sorted := append([]internal.SalesRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PerformanceScore > sorted[j].PerformanceScore })
	return headSales(sorted, n)
}

// BottomPerformers returns the bottom-n sales rows by performance score.
func BottomPerformers(rows []internal.SalesRow, n int) []internal.SalesRow {
	sorted := append([]internal.SalesRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PerformanceScore < sorted[j].PerformanceScore })
	return headSales(sorted, n)
}

// TopByRevenue returns the top-n sales rows by taxable amount, stable on ties.
func TopByRevenue(rows []internal.SalesRow, n int) []internal.SalesRow {
	sorted := append([]internal.SalesRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TaxableAmount > sorted[j].TaxableAmount })
	return headSales(sorted, n)
}

// TopByQuantity returns the top-n sales rows by quantity, stable on ties.
func TopByQuantity(rows []internal.SalesRow, n int) []internal.SalesRow {
	sorted := append([]internal.SalesRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Qty > sorted[j].Qty })
	return headSales(sorted, n)
}

func headSales(rows []internal.SalesRow, n int) []internal.SalesRow {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// FastMovers returns the top-n rows by outward quantity, restricted to rows
// that actually moved. Stable sort keeps first occurrence ahead on ties.
func FastMovers(rows []internal.StockRow, n int) []internal.StockRow {
	moved := filterStock(rows, func(r internal.StockRow) bool { return r.Outward > 0 })
	sort.SliceStable(moved, func(i, j int) bool { return moved[i].Outward > moved[j].Outward })
	return headStock(moved, n)
}

// SlowMovers returns the bottom-n rows by turnover among rows that moved and
// still hold stock.
func SlowMovers(rows []internal.StockRow, n int) []internal.StockRow {
	moved := filterStock(rows, func(r internal.StockRow) bool { return r.Outward > 0 && r.Closing > 0 })
	sort.SliceStable(moved, func(i, j int) bool { return moved[i].TurnoverRatio < moved[j].TurnoverRatio })
	return headStock(moved, n)
}

// DeadStockRows lists dead inventory, largest idle balance first.
func DeadStockRows(rows []internal.StockRow) []internal.StockRow {
	out := filterStock(rows, func(r internal.StockRow) bool { return r.DeadStock })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Closing > out[j].Closing })
	return out
}

// NegativeStockRows lists anomalies worst first (most negative closing).
func NegativeStockRows(rows []internal.StockRow) []internal.StockRow {
	out := filterStock(rows, func(r internal.StockRow) bool { return r.NegativeStock })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Closing < out[j].Closing })
	return out
}

// OverstockedRows lists overstock, heaviest balance first.
func OverstockedRows(rows []internal.StockRow) []internal.StockRow {
	out := filterStock(rows, func(r internal.StockRow) bool { return r.Overstocked })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Closing > out[j].Closing })
	return out
}

// OutOfStockRows lists rows with nothing left on hand.
func OutOfStockRows(rows []internal.StockRow) []internal.StockRow {
	return filterStock(rows, func(r internal.StockRow) bool { return r.Closing <= 0 })
}

// LowStockHighDemand flags rows nearly sold out but still selling fast:
// closing stock within (0, maxUnits] and turnover at or above minTurnover.
// Fastest-selling first.
func LowStockHighDemand(rows []internal.StockRow, maxUnits, minTurnover float64) []internal.StockRow {
	out := filterStock(rows, func(r internal.StockRow) bool {
		return r.Closing > 0 && r.Closing <= maxUnits && r.TurnoverRatio >= minTurnover
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].TurnoverRatio > out[j].TurnoverRatio })
	return out
}

func filterStock(rows []internal.StockRow, keep func(internal.StockRow) bool) []internal.StockRow {
	out := []internal.StockRow{}
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func headStock(rows []internal.StockRow, n int) []internal.StockRow {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}
