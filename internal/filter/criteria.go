package filter

import (
	"fmt"
	"strings"
)

// SortOption orders the filtered products.
type SortOption string

const (
	SortRelevant        SortOption = "relevant"
	SortPriceAscending  SortOption = "price-ascending"
	SortPriceDescending SortOption = "price-descending"
)

// SortOptions lists the options in display order.
var SortOptions = []SortOption{SortRelevant, SortPriceAscending, SortPriceDescending}

// ParseSort accepts the canonical names and the storefront's short aliases.
func ParseSort(value string) (SortOption, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "relevant":
		return SortRelevant, nil
	case "price-ascending", "low-high":
		return SortPriceAscending, nil
	case "price-descending", "high-low":
		return SortPriceDescending, nil
	default:
		return SortRelevant, fmt.Errorf("unknown sort option %q", value)
	}
}

// Label returns the human-readable name.
func (s SortOption) Label() string {
	switch s {
	case SortPriceAscending:
		return "Low to High"
	case SortPriceDescending:
		return "High to Low"
	default:
		return "Relevant"
	}
}

// Next cycles through SortOptions.
func (s SortOption) Next() SortOption {
	for i, opt := range SortOptions {
		if opt == s {
			return SortOptions[(i+1)%len(SortOptions)]
		}
	}
	return SortRelevant
}

// Criteria is the caller-owned selection the pipeline runs with. Empty sets
// mean "no restriction" for that facet.
type Criteria struct {
	Search       string
	Categories   []string
	Sizes        []string
	Colors       []string
	Availability []bool
	Sort         SortOption
}

// Toggle adds value to set when absent and removes it when present, returning
// a new slice. Used by front ends to flip facet checkboxes.
func Toggle[T comparable](set []T, value T) []T {
	out := make([]T, 0, len(set)+1)
	found := false
	for _, v := range set {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

// Facet option lists offered by the storefront.
var (
	Categories = []string{"Tops", "Dresses", "Pants", "Shorts", "Skirts", "Workwear"}
	Sizes      = []string{"S", "M", "L", "XL", "2XL"}
	Colors     = []string{"Beige", "Black", "Blue", "Red", "Green", "Pink", "Purple", "Yellow"}
)

// AvailabilityOption pairs an availability flag with its label.
type AvailabilityOption struct {
	Value bool
	Label string
}

// AvailabilityOptions lists the availability facet values.
var AvailabilityOptions = []AvailabilityOption{
	{Value: true, Label: "In Stock"},
	{Value: false, Label: "Out Of Stock"},
}
