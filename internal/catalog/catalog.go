package catalog

import (
	"fmt"
	"strings"
)

// Warning flags a data-quality issue found while building a catalog, such as
// the same product name registered under two companies.
type Warning struct {
	Product  string
	Company  string
	Previous string
}

func (w Warning) String() string {
	return fmt.Sprintf("product %q listed under %q and %q; keeping %q", w.Product, w.Previous, w.Company, w.Company)
}

// Catalog maps companies to their product names, preserving registration
// order. Product names keep their embedded package-size suffixes and mixed
// casing; only surrounding whitespace is trimmed. A catalog is immutable for
// the duration of an analysis run and safe for concurrent read-only use.
type Catalog struct {
	companies []string
	products  map[string][]string
	// owners tracks the current resolution of each product name, so
	// duplicate detection stays constant-time over large catalogs.
	owners   map[string]string
	warnings []Warning
}

func New() *Catalog {
	return &Catalog{products: map[string][]string{}, owners: map[string]string{}}
}

// Add registers products under a company. A product name already registered
// under a different company produces a Warning and is resolved
// last-registered-wins: the later company owns the name in the reverse index.
func (c *Catalog) Add(company string, products []string) {
	company = strings.TrimSpace(company)
	if company == "" {
		return
	}
	if _, ok := c.products[company]; !ok {
		c.companies = append(c.companies, company)
	}

	for _, p := range products {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// The reported "previous" owner is the one the reverse index would
		// have resolved to before this Add.
		if prev, ok := c.owners[p]; ok && prev != company {
			c.warnings = append(c.warnings, Warning{Product: p, Company: company, Previous: prev})
		}
		c.owners[p] = company
		c.products[company] = append(c.products[company], p)
	}
}

// Companies returns company names in registration order.
func (c *Catalog) Companies() []string {
	out := make([]string, len(c.companies))
	copy(out, c.companies)
	return out
}

// Products returns the product list registered for a company.
func (c *Catalog) Products(company string) []string {
	src := c.products[company]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func (c *Catalog) Warnings() []Warning {
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

func (c *Catalog) Len() int {
	total := 0
	for _, company := range c.companies {
		total += len(c.products[company])
	}
	return total
}

// ReverseIndex flattens the catalog to product name -> company. Later
// registrations win on duplicate names; an empty catalog yields an empty
// index, under which every row classifies as Other.
func (c *Catalog) ReverseIndex() map[string]string {
	idx := make(map[string]string, len(c.owners))
	for product, company := range c.owners {
		idx[product] = company
	}
	return idx
}
