package catalog

import (
	"sort"

	"agrisight/internal/util"
)

// GroupBySize deduplicates a product list and orders it family-first: names
// sharing a base name (size suffix stripped) sit together, families sort
// alphabetically, and within a family packages sort smallest to largest.
// Names without a parseable size sort after sized ones.
func GroupBySize(products []string) []string {
	seen := map[string]struct{}{}
	unique := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}

	families := map[string][]string{}
	order := []string{}
	for _, p := range unique {
		base := util.BaseName(p)
		if _, ok := families[base]; !ok {
			order = append(order, base)
		}
		families[base] = append(families[base], p)
	}
	sort.Strings(order)

	out := make([]string, 0, len(unique))
	for _, base := range order {
		group := families[base]
		sort.SliceStable(group, func(i, j int) bool {
			return sizeKey(group[i]) < sizeKey(group[j])
		})
		out = append(out, group...)
	}
	return out
}

func sizeKey(product string) float64 {
	size := util.ParseSize(product)
	if !size.Found {
		// Unsized names sort after any real package.
		return 1e12
	}
	return size.Value
}
