package pipeline

import (
	"agrisight/internal"
	"agrisight/internal/config"
)

// StockThresholds carries the tunable cut-offs for movement and overstock
// classification. Status bands are fixed.
type StockThresholds struct {
	FastTurnoverPct   float64
	MediumTurnoverPct float64
	OverstockUnits    float64
	OverstockTurnover float64
}

func ThresholdsFrom(cfg config.Config) StockThresholds {
	return StockThresholds{
		FastTurnoverPct:   cfg.FastTurnoverPct,
		MediumTurnoverPct: cfg.MediumTurnoverPct,
		OverstockUnits:    cfg.OverstockUnits,
		OverstockTurnover: cfg.OverstockTurnover,
	}
}

// DefaultThresholds mirrors the config defaults for callers without a
// loaded config, tests mostly.
func DefaultThresholds() StockThresholds {
	return StockThresholds{
		FastTurnoverPct:   70,
		MediumTurnoverPct: 40,
		OverstockUnits:    100,
		OverstockTurnover: 30,
	}
}

// DeriveStockMetrics fills the derived stock fields: turnover ratio, status
// band, movement class and the negative/dead/overstock flags. Returns a new
// slice; the input is not mutated.
func DeriveStockMetrics(rows []internal.StockRow, th StockThresholds) []internal.StockRow {
	out := make([]internal.StockRow, len(rows))
	for i, row := range rows {
		row.TurnoverRatio = turnoverRatio(row)
		row.Status = stockStatus(row.Closing)
		row.Movement = movementType(row, th)
		row.NegativeStock = row.Closing < 0
		row.DeadStock = row.Inward == 0 && row.Outward == 0 && row.Closing > 0
		row.Overstocked = row.Closing > th.OverstockUnits && row.TurnoverRatio < th.OverstockTurnover
		out[i] = row
	}
	return out
}

// turnoverRatio is outward over total available, as a percentage. A total of
// zero or less yields 0, never NaN.
func turnoverRatio(row internal.StockRow) float64 {
	if row.Total <= 0 {
		return 0
	}
	return row.Outward / row.Total * 100
}

func stockStatus(closing float64) internal.StockStatus {
	switch {
	case closing <= 0:
		return internal.StatusOutOfStock
	case closing <= 5:
		return internal.StatusLowStock
	case closing <= 20:
		return internal.StatusMedium
	case closing <= 50:
		return internal.StatusGood
	default:
		return internal.StatusHigh
	}
}

func movementType(row internal.StockRow, th StockThresholds) internal.MovementType {
	if row.Outward == 0 {
		return internal.MoveNone
	}
	switch ratio := turnoverRatio(row); {
	case ratio >= th.FastTurnoverPct:
		return internal.MoveFast
	case ratio >= th.MediumTurnoverPct:
		return internal.MoveMedium
	default:
		return internal.MoveSlow
	}
}
