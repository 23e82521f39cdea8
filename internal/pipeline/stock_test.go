package pipeline

import (
	"testing"

	"agrisight/internal"
)

func deriveOne(t *testing.T, row internal.StockRow) internal.StockRow {
	t.Helper()
	return DeriveStockMetrics([]internal.StockRow{row}, DefaultThresholds())[0]
}

func TestTurnoverRatio(t *testing.T) {
	row := deriveOne(t, internal.StockRow{Name: "x", Total: 20, Outward: 15, Closing: 5})
	if row.TurnoverRatio != 75 {
		t.Fatalf("turnover=%v", row.TurnoverRatio)
	}

	zero := deriveOne(t, internal.StockRow{Name: "y", Total: 0, Outward: 0})
	if zero.TurnoverRatio != 0 {
		t.Fatalf("zero total should give 0 turnover, got %v", zero.TurnoverRatio)
	}
}

func TestStockStatusBands(t *testing.T) {
	cases := []struct {
		closing float64
		want    internal.StockStatus
	}{
		{-3, internal.StatusOutOfStock},
		{0, internal.StatusOutOfStock},
		{1, internal.StatusLowStock},
		{5, internal.StatusLowStock},
		{6, internal.StatusMedium},
		{20, internal.StatusMedium},
		{21, internal.StatusGood},
		{50, internal.StatusGood},
		{51, internal.StatusHigh},
	}
	for _, tc := range cases {
		if got := stockStatus(tc.closing); got != tc.want {
			t.Fatalf("closing=%v: got %s want %s", tc.closing, got, tc.want)
		}
	}
}

func TestMovementBands(t *testing.T) {
	cases := []struct {
		total, outward float64
		want           internal.MovementType
	}{
		{100, 0, internal.MoveNone},
		{100, 70, internal.MoveFast},
		{100, 40, internal.MoveMedium},
		{100, 39, internal.MoveSlow},
	}
	for _, tc := range cases {
		row := deriveOne(t, internal.StockRow{Name: "x", Total: tc.total, Outward: tc.outward})
		if row.Movement != tc.want {
			t.Fatalf("outward=%v: got %s want %s", tc.outward, row.Movement, tc.want)
		}
	}
}

func TestDeadStockFlag(t *testing.T) {
	rows := []internal.StockRow{
		{Name: "held over", Opening: 5, Inward: 0, Total: 5, Outward: 0, Closing: 5},
		{Name: "phantom", Opening: 0, Inward: 0, Total: 0, Outward: 0, Closing: 5},
	}
	for _, in := range rows {
		row := deriveOne(t, in)
		if !row.DeadStock {
			t.Fatalf("%s: expected dead stock flag", in.Name)
		}
		if row.Movement != internal.MoveNone {
			t.Fatalf("%s: movement=%s", in.Name, row.Movement)
		}
		if row.Status != internal.StatusLowStock {
			t.Fatalf("%s: status=%s", in.Name, row.Status)
		}
	}
}

func TestNegativeStockFlag(t *testing.T) {
	row := deriveOne(t, internal.StockRow{Name: "x", Opening: 1, Total: 1, Outward: 4, Closing: -3})
	if !row.NegativeStock {
		t.Fatalf("expected negative stock flag")
	}
	if row.Status != internal.StatusOutOfStock {
		t.Fatalf("status=%s", row.Status)
	}
}

func TestOverstockedFlag(t *testing.T) {
	row := deriveOne(t, internal.StockRow{Name: "x", Total: 200, Outward: 40, Closing: 160})
	// turnover 20% with 160 closing units.
	if !row.Overstocked {
		t.Fatalf("expected overstocked flag (turnover=%v)", row.TurnoverRatio)
	}

	busy := deriveOne(t, internal.StockRow{Name: "y", Total: 500, Outward: 350, Closing: 150})
	if busy.Overstocked {
		t.Fatalf("high-turnover stock flagged as overstocked")
	}
}
