package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"agrisight/internal"
)

// ExportSalesXLSX writes a sales analysis as a multi-sheet workbook: company
// rollup, product rollup, tax rollup and the top performers by revenue and
// quantity.
func ExportSalesXLSX(a *internal.SalesAnalysis, topN int, outputPath string) error {
	f := excelize.NewFile()

	companySheet := f.GetSheetName(0)
	if err := f.SetSheetName(companySheet, "Company Analysis"); err != nil {
		return err
	}
	writeSheet(f, "Company Analysis", []string{
		"Company", "Products", "Total Qty", "Avg Qty", "Revenue", "Avg Revenue", "Tax", "Total With Tax", "Avg Unit Price", "Market Share %",
	}, len(a.Companies), func(i int, set func(col int, value any)) {
		c := a.Companies[i]
		set(1, c.Company)
		set(2, c.ProductCount)
		set(3, c.TotalQuantity)
		set(4, c.AvgQuantity)
		set(5, c.TotalRevenue)
		set(6, c.AvgRevenue)
		set(7, c.TotalTax)
		set(8, c.TotalWithTax)
		set(9, c.AvgUnitPrice)
		set(10, c.MarketShare)
	})

	addSheet(f, "Product Analysis", []string{
		"Product", "Company", "Total Qty", "Revenue", "Tax", "Total With Tax", "Avg Unit Price", "Performance Score",
	}, len(a.Products), func(i int, set func(col int, value any)) {
		p := a.Products[i]
		set(1, p.Name)
		set(2, p.Company)
		set(3, p.TotalQuantity)
		set(4, p.TotalRevenue)
		set(5, p.TotalTax)
		set(6, p.TotalWithTax)
		set(7, p.AvgUnitPrice)
		set(8, p.PerformanceScore)
	})

	addSheet(f, "Tax Analysis", []string{
		"Rate %", "Products", "Taxable Amount", "Tax Collected", "Total Qty", "Contribution %",
	}, len(a.TaxRates), func(i int, set func(col int, value any)) {
		t := a.TaxRates[i]
		set(1, t.Rate)
		set(2, t.ProductCount)
		set(3, t.TaxableAmount)
		set(4, t.TaxCollected)
		set(5, t.TotalQuantity)
		set(6, t.Contribution)
	})

	topRevenue := TopByRevenue(a.Rows, topN)
	addSheet(f, "Top Revenue", salesRowHeaders(), len(topRevenue), salesRowWriter(topRevenue))

	topQty := TopByQuantity(a.Rows, topN)
	addSheet(f, "Top Quantity", salesRowHeaders(), len(topQty), salesRowWriter(topQty))

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ExportStockXLSX writes a stock analysis workbook: company rollup, the
// mover/anomaly lists and a one-column overview sheet.
func ExportStockXLSX(a *internal.StockAnalysis, outputPath string) error {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), "Company Analysis"); err != nil {
		return err
	}
	writeSheet(f, "Company Analysis", []string{
		"Company", "Products", "Opening", "Inward", "Available", "Outward", "Closing", "Avg Turnover %", "Negative", "Dead", "Overstocked",
	}, len(a.Companies), func(i int, set func(col int, value any)) {
		c := a.Companies[i]
		set(1, c.Company)
		set(2, c.ProductCount)
		set(3, c.OpeningStock)
		set(4, c.Inward)
		set(5, c.TotalAvailable)
		set(6, c.Outward)
		set(7, c.ClosingStock)
		set(8, c.AvgTurnoverRatio)
		set(9, c.NegativeStockCount)
		set(10, c.DeadStockCount)
		set(11, c.OverstockedCount)
	})

	stockSheets := []struct {
		name string
		rows []internal.StockRow
	}{
		{"Fast Movers", a.FastMovers},
		{"Slow Movers", a.SlowMovers},
		{"Dead Stock", a.DeadStock},
		{"Negative Stock", a.NegativeStock},
		{"Overstocked", a.Overstocked},
	}
	for _, s := range stockSheets {
		addSheet(f, s.name, stockRowHeaders(), len(s.rows), stockRowWriter(s.rows))
	}

	ov := a.Overview
	overview := [][2]any{
		{"Total Products", ov.TotalProducts},
		{"Total Opening", ov.TotalOpening},
		{"Total Inward", ov.TotalInward},
		{"Total Available", ov.TotalAvailable},
		{"Total Outward", ov.TotalOutward},
		{"Total Closing", ov.TotalClosing},
		{"Avg Turnover %", ov.AvgTurnoverRatio},
		{"In Stock", ov.InStock},
		{"Out of Stock", ov.OutOfStock},
		{"Negative Stock", ov.NegativeStock},
		{"Dead Stock", ov.DeadStock},
		{"Fast Moving", ov.FastMoving},
		{"Medium Moving", ov.MediumMoving},
		{"Slow Moving", ov.SlowMoving},
		{"No Movement", ov.NoMovement},
		{"Overstocked", ov.Overstocked},
	}
	addSheet(f, "Overview", []string{"Metric", "Value"}, len(overview), func(i int, set func(col int, value any)) {
		set(1, overview[i][0])
		set(2, overview[i][1])
	})

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func addSheet(f *excelize.File, name string, headers []string, n int, write func(i int, set func(col int, value any))) {
	_, err := f.NewSheet(name)
	if err != nil {
		return
	}
	writeSheet(f, name, headers, n, write)
}

func writeSheet(f *excelize.File, sheet string, headers []string, n int, write func(i int, set func(col int, value any))) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i := 0; i < n; i++ {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		write(i, set)
	}
}

func salesRowHeaders() []string {
	return []string{"Product", "Company", "Qty", "Taxable Amount", "Tax Rate %", "Tax", "Total With Tax", "Performance Score"}
}

func salesRowWriter(rows []internal.SalesRow) func(i int, set func(col int, value any)) {
	return func(i int, set func(col int, value any)) {
		row := rows[i]
		set(1, row.Name)
		set(2, row.Company)
		set(3, row.Qty)
		set(4, row.TaxableAmount)
		set(5, row.TaxRate)
		set(6, row.TaxAmount)
		set(7, row.TotalWithTax)
		set(8, row.PerformanceScore)
	}
}

func stockRowHeaders() []string {
	return []string{"Product", "Company", "Opening", "Inward", "Available", "Outward", "Closing", "Turnover %", "Status", "Movement"}
}

func stockRowWriter(rows []internal.StockRow) func(i int, set func(col int, value any)) {
	return func(i int, set func(col int, value any)) {
		row := rows[i]
		set(1, row.Name)
		set(2, row.Company)
		set(3, row.Opening)
		set(4, row.Inward)
		set(5, row.Total)
		set(6, row.Outward)
		set(7, row.Closing)
		set(8, fmt.Sprintf("%.1f", row.TurnoverRatio))
		set(9, string(row.Status))
		set(10, string(row.Movement))
	}
}
