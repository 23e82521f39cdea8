package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"agrisight/internal"
)

// WriteSalesPDF renders the sales report as a PDF: cover page with metric
// cards and top performers, company table page, top-products page and one
// page per chart.
func WriteSalesPDF(w io.Writer, a *internal.SalesAnalysis, charts []Chart, topN int) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Sales Analysis Report", true)
	pdf.SetAuthor("agrisight", true)
	pdf.SetCreationDate(time.Now())

	writeCoverPage(pdf, a, topN)
	writeCompanyPage(pdf, a.Companies)
	writeProductPage(pdf, headProducts(a.Products, topN))
	writeChartPages(pdf, charts)

	return pdf.Output(w)
}

func writeCoverPage(pdf *fpdf.Fpdf, a *internal.SalesAnalysis, topN int) {
	pdf.AddPage()

	pdf.SetFillColor(44, 62, 80)
	pdf.Rect(0, 0, 210, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(15, 12)
	pdf.CellFormat(180, 10, "Sales Analysis Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(15)
	pdf.CellFormat(180, 6, "Generated "+time.Now().Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(45, 52, 54)

	cards := []struct {
		label, value string
	}{
		{"Units Sold", fmt.Sprintf("%.0f", a.TotalQuantity)},
		{"Revenue", fmt.Sprintf("%.2f", a.TotalRevenue)},
		{"Tax Collected", fmt.Sprintf("%.2f", a.TotalTax)},
		{"Grand Total", fmt.Sprintf("%.2f", a.GrandTotal)},
		{"Products", fmt.Sprintf("%d", len(a.Rows))},
		{"Companies", fmt.Sprintf("%d", a.CompanyCount)},
	}

	const cardW, cardH, gap = 58.0, 24.0, 3.0
	x, y := 15.0, 50.0
	for i, card := range cards {
		pdf.SetFillColor(244, 246, 248)
		pdf.Rect(x, y, cardW, cardH, "F")
		pdf.SetXY(x+4, y+4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(cardW-8, 8, card.value, "", 1, "L", false, 0, "")
		pdf.SetX(x + 4)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(99, 110, 114)
		pdf.CellFormat(cardW-8, 6, card.label, "", 1, "L", false, 0, "")
		pdf.SetTextColor(45, 52, 54)

		x += cardW + gap
		if (i+1)%3 == 0 {
			x = 15
			y += cardH + gap
		}
	}

	if len(a.Insights) > 0 {
		pdf.SetXY(15, y+cardH+12)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(180, 8, "Key Insights", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, ins := range a.Insights {
			pdf.SetX(15)
			pdf.MultiCell(180, 6, "- "+ins.Text, "", "L", false)
		}
	}
}

func writeCompanyPage(pdf *fpdf.Fpdf, companies []internal.CompanySummary) {
	pdf.AddPage()
	pageTitle(pdf, "Company Performance")

	headers := []string{"Company", "Products", "Qty", "Revenue", "Tax", "Share %"}
	widths := []float64{55, 20, 25, 35, 30, 20}
	tableHeader(pdf, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	for _, c := range companies {
		cells := []string{
			c.Company,
			fmt.Sprintf("%d", c.ProductCount),
			fmt.Sprintf("%.0f", c.TotalQuantity),
			fmt.Sprintf("%.2f", c.TotalRevenue),
			fmt.Sprintf("%.2f", c.TotalTax),
			fmt.Sprintf("%.1f", c.MarketShare),
		}
		tableRow(pdf, cells, widths)
	}
}

func writeProductPage(pdf *fpdf.Fpdf, products []internal.ProductSummary) {
	pdf.AddPage()
	pageTitle(pdf, "Top Products")

	headers := []string{"Product", "Company", "Qty", "Revenue", "Score"}
	widths := []float64{70, 40, 20, 30, 25}
	tableHeader(pdf, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range products {
		cells := []string{
			p.Name,
			p.Company,
			fmt.Sprintf("%.0f", p.TotalQuantity),
			fmt.Sprintf("%.2f", p.TotalRevenue),
			fmt.Sprintf("%.1f", p.PerformanceScore),
		}
		tableRow(pdf, cells, widths)
	}
}

func writeChartPages(pdf *fpdf.Fpdf, charts []Chart) {
	for i, c := range charts {
		pdf.AddPage()
		pageTitle(pdf, c.Title)

		name := fmt.Sprintf("chart-%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(c.PNG))
		pdf.ImageOptions(name, 15, 40, 180, 0, false, opts, 0, "")
	}
}

func pageTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(15, 15)
	pdf.CellFormat(180, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func tableHeader(pdf *fpdf.Fpdf, headers []string, widths []float64) {
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(15)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(45, 52, 54)
}

func tableRow(pdf *fpdf.Fpdf, cells []string, widths []float64) {
	pdf.SetX(15)
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
