package pipeline

import (
	"sort"

	"agrisight/internal"
)

// AggregateSalesByCompany groups derived sales rows by company and computes
// per-company totals, averages and market share. Market share is each
// company's revenue over the batch total; a zero-revenue batch reports 0%
// for everyone. Sorted by revenue descending, company name ascending on ties,
// so equal inputs in any row order produce identical output.
func AggregateSalesByCompany(rows []internal.SalesRow) []internal.CompanySummary {
	groups := map[string][]internal.SalesRow{}
	for _, row := range rows {
		groups[row.Company] = append(groups[row.Company], row)
	}

	var totalRevenue float64
	for _, row := range rows {
		totalRevenue += row.TaxableAmount
	}

	out := make([]internal.CompanySummary, 0, len(groups))
	for company, members := range groups {
		s := internal.CompanySummary{Company: company, ProductCount: len(members)}
		var unitPriceSum float64
		for _, row := range members {
			s.TotalQuantity += row.Qty
			s.TotalRevenue += row.TaxableAmount
			s.TotalTax += row.TaxAmount
			s.TotalWithTax += row.TotalWithTax
			unitPriceSum += row.UnitPrice
		}
		n := float64(len(members))
		s.AvgQuantity = s.TotalQuantity / n
		s.AvgRevenue = s.TotalRevenue / n
		s.AvgUnitPrice = unitPriceSum / n
		if totalRevenue > 0 {
			s.MarketShare = s.TotalRevenue / totalRevenue * 100
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRevenue != out[j].TotalRevenue {
			return out[i].TotalRevenue > out[j].TotalRevenue
		}
		return out[i].Company < out[j].Company
	})
	return out
}

// AggregateSalesByProduct groups rows by product name. A product appearing
// under multiple rows sums its quantities and amounts; the performance score
// reported is the maximum across its rows.
func AggregateSalesByProduct(rows []internal.SalesRow) []internal.ProductSummary {
	groups := map[string][]internal.SalesRow{}
	for _, row := range rows {
		groups[row.Name] = append(groups[row.Name], row)
	}

	out := make([]internal.ProductSummary, 0, len(groups))
	for name, members := range groups {
		// Company and score carry over from the product's first row.
		s := internal.ProductSummary{
			Name:             name,
			Company:          members[0].Company,
			PerformanceScore: members[0].PerformanceScore,
		}
		var unitPriceSum float64
		for _, row := range members {
			s.TotalQuantity += row.Qty
			s.TotalRevenue += row.TaxableAmount
			s.TotalTax += row.TaxAmount
			s.TotalWithTax += row.TotalWithTax
			unitPriceSum += row.UnitPrice
		}
		s.AvgUnitPrice = unitPriceSum / float64(len(members))
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRevenue != out[j].TotalRevenue {
			return out[i].TotalRevenue > out[j].TotalRevenue
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AggregateByTaxRate groups rows by tax rate. Contribution is each rate's
// share of the batch taxable amount; a zero-taxable batch reports 0%
// throughout. Sorted by rate ascending.
func AggregateByTaxRate(rows []internal.SalesRow) []internal.TaxRateSummary {
	groups := map[float64]*internal.TaxRateSummary{}
	order := []float64{}
	var totalTaxable float64

	for _, row := range rows {
		s, ok := groups[row.TaxRate]
		if !ok {
			s = &internal.TaxRateSummary{Rate: row.TaxRate}
			groups[row.TaxRate] = s
			order = append(order, row.TaxRate)
		}
		s.ProductCount++
		s.TaxableAmount += row.TaxableAmount
		s.TaxCollected += row.TaxAmount
		s.TotalQuantity += row.Qty
		totalTaxable += row.TaxableAmount
	}

	sort.Float64s(order)
	out := make([]internal.TaxRateSummary, 0, len(order))
	for _, rate := range order {
		s := *groups[rate]
		if totalTaxable > 0 {
			s.Contribution = s.TaxableAmount / totalTaxable * 100
		}
		out = append(out, s)
	}
	return out
}

// AggregateStockByCompany groups derived stock rows by company. Sorted by
// closing stock descending, company name ascending on ties.
func AggregateStockByCompany(rows []internal.StockRow) []internal.StockCompanySummary {
	groups := map[string][]internal.StockRow{}
	for _, row := range rows {
		groups[row.Company] = append(groups[row.Company], row)
	}

	out := make([]internal.StockCompanySummary, 0, len(groups))
	for company, members := range groups {
		s := internal.StockCompanySummary{Company: company, ProductCount: len(members)}
		var turnoverSum float64
		for _, row := range members {
			s.OpeningStock += row.Opening
			s.Inward += row.Inward
			s.TotalAvailable += row.Total
			s.Outward += row.Outward
			s.ClosingStock += row.Closing
			turnoverSum += row.TurnoverRatio
			if row.NegativeStock {
				s.NegativeStockCount++
			}
			if row.DeadStock {
				s.DeadStockCount++
			}
			if row.Overstocked {
				s.OverstockedCount++
			}
		}
		s.AvgTurnoverRatio = turnoverSum / float64(len(members))
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ClosingStock != out[j].ClosingStock {
			return out[i].ClosingStock > out[j].ClosingStock
		}
		return out[i].Company < out[j].Company
	})
	return out
}

// StockOverviewOf totals a derived stock batch into the single overview
// block. InStock counts rows with positive closing stock.
func StockOverviewOf(rows []internal.StockRow) internal.StockOverview {
	ov := internal.StockOverview{TotalProducts: len(rows)}
	var turnoverSum float64
	for _, row := range rows {
		ov.TotalOpening += row.Opening
		ov.TotalInward += row.Inward
		ov.TotalAvailable += row.Total
		ov.TotalOutward += row.Outward
		ov.TotalClosing += row.Closing
		turnoverSum += row.TurnoverRatio

		if row.Closing > 0 {
			ov.InStock++
		} else {
			ov.OutOfStock++
		}
		if row.NegativeStock {
			ov.NegativeStock++
		}
		if row.DeadStock {
			ov.DeadStock++
		}
		if row.Overstocked {
			ov.Overstocked++
		}
		switch row.Movement {
		case internal.MoveFast:
			ov.FastMoving++
		case internal.MoveMedium:
			ov.MediumMoving++
		case internal.MoveSlow:
			ov.SlowMoving++
		case internal.MoveNone:
			ov.NoMovement++
		}
	}
	if len(rows) > 0 {
		ov.AvgTurnoverRatio = turnoverSum / float64(len(rows))
	}
	return ov
}
