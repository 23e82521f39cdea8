package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const productHeader = "Product Name"

// companyNameFixups restores spaces the CSV filenames cannot carry.
var companyNameFixups = map[string]string{
	"BestAgrolife":    "Best Agrolife",
	"NovaAgriScience": "Nova Agri Science",
}

// LoadDir builds a catalog from a folder of per-company CSV files named
// <Company>_Products.csv or <Company>_Product_Names.csv. Each file holds one
// product name per line, optionally under a "Product Name" header. Files are
// visited in sorted name order so duplicate resolution is deterministic.
func LoadDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	cat := New()
	for _, name := range names {
		products, err := readProductsCSV(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		cat.Add(companyFromFilename(name), products)
	}
	return cat, nil
}

func companyFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.TrimSuffix(name, "_Products")
	name = strings.TrimSuffix(name, "_Product_Names")
	if fixed, ok := companyNameFixups[name]; ok {
		return fixed
	}
	return strings.ReplaceAll(name, "_", " ")
}

func readProductsCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(records))
	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		value := strings.TrimSpace(rec[0])
		if value == "" {
			continue
		}
		if i == 0 && strings.EqualFold(value, productHeader) {
			continue
		}
		out = append(out, value)
	}
	return out, nil
}

// WriteCSV saves a product list back to a per-company CSV with the standard
// header, used by the catalog grouping command.
func WriteCSV(path string, products []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{productHeader}); err != nil {
		return err
	}
	for _, p := range products {
		if err := w.Write([]string{p}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
