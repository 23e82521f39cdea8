package pipeline

import (
	"sort"

	"agrisight/internal"
)

const (
	revenueWeight  = 0.6
	quantityWeight = 0.4
)

// DeriveSalesMetrics computes the per-row and batch-wide derived fields:
// unit price, tax amount, total with tax, percentile ranks and the composite
// performance score. Returns a new slice; the input is not mutated.
//
// Division guards are uniform: any ratio with a non-positive denominator is
// 0, never NaN and never an error for a single row.
func DeriveSalesMetrics(rows []internal.SalesRow) []internal.SalesRow {
	out := make([]internal.SalesRow, len(rows))
	revenues := make([]float64, len(rows))
	quantities := make([]float64, len(rows))

	for i, row := range rows {
		if row.Qty > 0 {
			row.UnitPrice = row.TaxableAmount / row.Qty
		}
		row.TaxAmount = row.TaxableAmount * row.TaxRate / 100
		row.TotalWithTax = row.TaxableAmount + row.TaxAmount
		out[i] = row
		revenues[i] = row.TaxableAmount
		quantities[i] = row.Qty
	}

	revenuePct := percentileRanks(revenues)
	qtyPct := percentileRanks(quantities)
	revenueNorm := minMaxNormalize(revenues)
	qtyNorm := minMaxNormalize(quantities)

	for i := range out {
		out[i].RevenuePercentile = revenuePct[i]
		out[i].QtyPercentile = qtyPct[i]
		out[i].PerformanceScore = (revenueNorm[i]*revenueWeight + qtyNorm[i]*quantityWeight) * 100
	}
	return out
}

// percentileRanks assigns each value the average rank of its tied group,
// scaled to 0-100. The unique maximum of a batch ranks 100; ranks are
// monotonic non-decreasing in the underlying value.
func percentileRanks(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	i := 0
	for i < n {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// 1-based ranks i+1..j+1 average to (i+j+2)/2.
		avgRank := float64(i+j+2) / 2
		pct := avgRank / float64(n) * 100
		for k := i; k <= j; k++ {
			out[idx[k]] = pct
		}
		i = j + 1
	}
	return out
}

// minMaxNormalize scales values into [0,1]. A zero-range batch (all values
// equal) normalizes to 0 for every row rather than dividing by zero.
func minMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return out
	}

	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
