package ui

import (
	"slices"
	"strings"

	"github.com/five82/storefront/internal/filter"
)

type facetKind int

const (
	facetCategory facetKind = iota
	facetSize
	facetColor
	facetAvailability
)

func (k facetKind) title() string {
	switch k {
	case facetSize:
		return "Size"
	case facetColor:
		return "Color"
	case facetAvailability:
		return "Availability"
	default:
		return "Category"
	}
}

// facetEntry is one checkbox in the facet panel.
type facetEntry struct {
	kind  facetKind
	label string
	value string
	flag  bool
}

func facetEntries() []facetEntry {
	var out []facetEntry
	for _, c := range filter.Categories {
		out = append(out, facetEntry{kind: facetCategory, label: c, value: c})
	}
	for _, s := range filter.Sizes {
		out = append(out, facetEntry{kind: facetSize, label: s, value: s})
	}
	for _, c := range filter.Colors {
		out = append(out, facetEntry{kind: facetColor, label: c, value: c})
	}
	for _, a := range filter.AvailabilityOptions {
		out = append(out, facetEntry{kind: facetAvailability, label: a.Label, flag: a.Value})
	}
	return out
}

// toggleFacet returns criteria with entry flipped. The input is not modified.
func toggleFacet(c filter.Criteria, e facetEntry) filter.Criteria {
	switch e.kind {
	case facetCategory:
		c.Categories = filter.Toggle(c.Categories, e.value)
	case facetSize:
		c.Sizes = filter.Toggle(c.Sizes, e.value)
	case facetColor:
		c.Colors = filter.Toggle(c.Colors, e.value)
	case facetAvailability:
		c.Availability = filter.Toggle(c.Availability, e.flag)
	}
	return c
}

func facetChecked(c filter.Criteria, e facetEntry) bool {
	switch e.kind {
	case facetCategory:
		return slices.Contains(c.Categories, e.value)
	case facetSize:
		return slices.Contains(c.Sizes, e.value)
	case facetColor:
		return slices.Contains(c.Colors, e.value)
	default:
		return slices.Contains(c.Availability, e.flag)
	}
}

// activeFacetSummary renders the selected facets for the header line.
func activeFacetSummary(c filter.Criteria) string {
	var parts []string
	if len(c.Categories) > 0 {
		parts = append(parts, "category="+strings.Join(c.Categories, ","))
	}
	if len(c.Sizes) > 0 {
		parts = append(parts, "size="+strings.Join(c.Sizes, ","))
	}
	if len(c.Colors) > 0 {
		parts = append(parts, "color="+strings.Join(c.Colors, ","))
	}
	if len(c.Availability) > 0 {
		var labels []string
		for _, a := range filter.AvailabilityOptions {
			if slices.Contains(c.Availability, a.Value) {
				labels = append(labels, a.Label)
			}
		}
		parts = append(parts, "availability="+strings.Join(labels, ","))
	}
	return strings.Join(parts, "  ")
}
