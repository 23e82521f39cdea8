package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"agrisight/internal"
	"agrisight/internal/catalog"
	"agrisight/internal/config"
	"agrisight/internal/pipeline"
	"agrisight/internal/report"
	"agrisight/internal/server"
	"agrisight/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "analyze:sales":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input xlsx or csv path")
		out := fs.String("out", "", "output xlsx path")
		html := fs.String("html", "", "optional html report path")
		pdfOut := fs.String("pdf", "", "optional pdf report path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--input and --out are required"))
		}

		analyzer := makeAnalyzer(cfg)
		records, err := readRecords(*input)
		must(err)
		analysis, err := analyzer.AnalyzeSales(records)
		must(err)
		must(pipeline.ExportSalesXLSX(analysis, cfg.TopN, *out))
		fmt.Printf("analyzed rows=%d companies=%d skipped=%d output=%s\n",
			len(analysis.Rows), analysis.CompanyCount, analysis.SkippedRows, *out)

		if *html != "" || *pdfOut != "" {
			charts, err := report.SalesCharts(analysis)
			must(err)
			if *html != "" {
				must(writeReport(*html, func(f *os.File) error {
					return report.WriteSalesHTML(f, analysis, charts, cfg.TopN)
				}))
				fmt.Printf("html report: %s\n", *html)
			}
			if *pdfOut != "" {
				must(writeReport(*pdfOut, func(f *os.File) error {
					return report.WriteSalesPDF(f, analysis, charts, cfg.TopN)
				}))
				fmt.Printf("pdf report: %s\n", *pdfOut)
			}
		}
	case "analyze:stock":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input xlsx or csv path")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--input and --out are required"))
		}

		analyzer := makeAnalyzer(cfg)
		records, err := readRecords(*input)
		must(err)
		analysis, err := analyzer.AnalyzeStock(records)
		must(err)
		must(pipeline.ExportStockXLSX(analysis, *out))
		fmt.Printf("analyzed stock rows=%d skipped=%d output=%s\n",
			len(analysis.Rows), analysis.SkippedRows, *out)
	case "catalog:verify":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.CatalogDir, "catalog csv directory")
		_ = fs.Parse(os.Args[2:])

		cat, err := catalog.LoadDir(*dir)
		must(err)
		fmt.Printf("catalog ok: %d companies, %d products\n", len(cat.Companies()), cat.Len())
		for _, w := range cat.Warnings() {
			fmt.Printf("warning: %s\n", w)
		}
	case "catalog:group":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.CatalogDir, "catalog csv directory")
		_ = fs.Parse(os.Args[2:])

		cat, err := catalog.LoadDir(*dir)
		must(err)
		for _, company := range cat.Companies() {
			grouped := catalog.GroupBySize(cat.Products(company))
			path := filepath.Join(*dir, strings.ReplaceAll(company, " ", "_")+"_Products.csv")
			must(catalog.WriteCSV(path, grouped))
			fmt.Printf("grouped %s: %d products\n", company, len(grouped))
		}
	case "catalog:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.CatalogDir, "catalog csv directory")
		_ = fs.Parse(os.Args[2:])

		cat, err := catalog.LoadDir(*dir)
		must(err)
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		must(db.SaveCatalog(cat))
		fmt.Printf("imported %d products into %s\n", cat.Len(), cfg.DBPath)
	case "serve":
		analyzer := makeAnalyzer(cfg)
		if db, err := storage.Open(cfg.DBPath); err == nil {
			analyzer.DB = db
			defer db.Close()
		}
		srv := server.New(analyzer)
		fmt.Printf("listening on %s\n", cfg.HTTPAddr)
		must(srv.Router().Run(cfg.HTTPAddr))
	default:
		usage()
		os.Exit(1)
	}
}

// makeAnalyzer loads the catalog from CSV when available, else from sqlite.
func makeAnalyzer(cfg config.Config) *pipeline.Analyzer {
	if cat, err := catalog.LoadDir(cfg.CatalogDir); err == nil && cat.Len() > 0 {
		return pipeline.NewAnalyzer(cfg, cat.ReverseIndex())
	}

	if db, err := storage.Open(cfg.DBPath); err == nil {
		defer db.Close()
		if cat, err := db.LoadCatalog(); err == nil {
			return pipeline.NewAnalyzer(cfg, cat.ReverseIndex())
		}
	}

	fmt.Fprintln(os.Stderr, "warning: no catalog found, all rows will classify as Other")
	return pipeline.NewAnalyzer(cfg, map[string]string{})
}

func readRecords(path string) ([]internal.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return pipeline.RecordsFromXLSX(f)
	case ".csv":
		return pipeline.RecordsFromCSV(f)
	default:
		return nil, fmt.Errorf("unsupported input type: %s", path)
	}
}

func writeReport(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

func usage() {
	fmt.Println("usage: agrisight <command>")
	fmt.Println("commands:")
	fmt.Println("  analyze:sales --input=./sales.xlsx --out=./out/sales.xlsx [--html=...] [--pdf=...]")
	fmt.Println("  analyze:stock --input=./stock.xlsx --out=./out/stock.xlsx")
	fmt.Println("  catalog:verify [--dir=./catalog]")
	fmt.Println("  catalog:group [--dir=./catalog]")
	fmt.Println("  catalog:import [--dir=./catalog]")
	fmt.Println("  serve")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
