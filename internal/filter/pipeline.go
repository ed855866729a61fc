// Package filter narrows and orders the catalog for browsing.
package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/five82/storefront/internal/shop"
)

// Apply runs the search, facet and sort stages over products and returns a new
// slice. Neither products nor c is modified.
func Apply(products []shop.Product, c Criteria) []shop.Product {
	out := make([]shop.Product, 0, len(products))

	// A blank term disables the stage; otherwise the term is matched as typed,
	// surrounding spaces included.
	search := ""
	if strings.TrimSpace(c.Search) != "" {
		search = strings.ToLower(c.Search)
	}
	categories := lowerSet(c.Categories)
	sizes := lowerSet(c.Sizes)
	colors := lowerSet(c.Colors)
	availability := make(map[bool]struct{}, len(c.Availability))
	for _, v := range c.Availability {
		availability[v] = struct{}{}
	}

	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[strings.ToLower(p.Category)]; !ok || p.Category == "" {
				continue
			}
		}
		if len(sizes) > 0 && !anyIn(p.Sizes, sizes) {
			continue
		}
		if len(colors) > 0 && !anyIn(p.Colors, colors) {
			continue
		}
		if len(availability) > 0 {
			if _, ok := availability[p.Availability]; !ok {
				continue
			}
		}
		out = append(out, p)
	}

	switch c.Sort {
	case SortPriceAscending:
		slices.SortStableFunc(out, func(a, b shop.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceDescending:
		slices.SortStableFunc(out, func(a, b shop.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	}
	return out
}

func matchesSearch(p shop.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	return p.Category != "" && strings.Contains(strings.ToLower(p.Category), term)
}

func lowerSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

func anyIn(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[strings.ToLower(v)]; ok {
			return true
		}
	}
	return false
}
