package report

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io"
	"time"

	"agrisight/internal"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var salesTemplate = template.Must(template.ParseFS(templateFS, "templates/sales.html.tmpl"))

type htmlChart struct {
	Title string
	// DataURI is built from bytes we rendered ourselves, never request input.
	DataURI template.URL
}

type salesReportData struct {
	GeneratedAt string

	TotalQuantity float64
	TotalRevenue  float64
	TotalTax      float64
	GrandTotal    float64
	CompanyCount  int
	ProductCount  int

	Companies   []internal.CompanySummary
	TopRevenue  []internal.ProductSummary
	TopQuantity []internal.ProductSummary
	TaxRates    []internal.TaxRateSummary
	Insights    []internal.Insight
	Charts      []htmlChart
}

// WriteSalesHTML renders the single-page sales report: metric grid, top
// performer tables, company and tax tables, insight list and the chart set
// inlined as base64 images.
func WriteSalesHTML(w io.Writer, a *internal.SalesAnalysis, charts []Chart, topN int) error {
	data := salesReportData{
		GeneratedAt:   time.Now().Format("02 Jan 2006 15:04"),
		TotalQuantity: a.TotalQuantity,
		TotalRevenue:  a.TotalRevenue,
		TotalTax:      a.TotalTax,
		GrandTotal:    a.GrandTotal,
		CompanyCount:  a.CompanyCount,
		ProductCount:  len(a.Rows),
		Companies:     a.Companies,
		TopRevenue:    headProducts(a.Products, topN),
		TopQuantity:   headProducts(topProductsByQty(a.Products), topN),
		TaxRates:      a.TaxRates,
		Insights:      a.Insights,
	}
	for _, c := range charts {
		data.Charts = append(data.Charts, htmlChart{
			Title:   c.Title,
			DataURI: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(c.PNG)),
		})
	}

	return salesTemplate.Execute(w, data)
}

func headProducts(products []internal.ProductSummary, n int) []internal.ProductSummary {
	if n <= 0 || n >= len(products) {
		return products
	}
	return products[:n]
}
