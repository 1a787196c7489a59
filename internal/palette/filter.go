// Package palette lists the agent catalog, filters it and originates drag
// operations that carry a serialized agent type to the canvas.
package palette

import (
	"strings"

	"github.com/tuannvm/canvasflow/internal/catalog"
)

// CategoryFilter is the palette's category selector value.
type CategoryFilter string

// Selectable category filters.
const (
	All           CategoryFilter = "all"
	DataRetrieval CategoryFilter = CategoryFilter(catalog.CategoryDataRetrieval)
	Communication CategoryFilter = CategoryFilter(catalog.CategoryCommunication)
	Action        CategoryFilter = CategoryFilter(catalog.CategoryAction)
)

// CategoryFilters lists the selector values in display order.
var CategoryFilters = []CategoryFilter{All, DataRetrieval, Communication, Action}

// ParseCategory accepts one of CategoryFilters.
func ParseCategory(s string) (CategoryFilter, bool) {
	for _, c := range CategoryFilters {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Match reports whether d is shown for the given search term and category.
// The term matches name or description, case-insensitively; an empty term
// matches everything.
func Match(d catalog.Descriptor, term string, category CategoryFilter) bool {
	if category != All && string(d.Category) != string(category) {
		return false
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(d.Name), needle) ||
		strings.Contains(strings.ToLower(d.Description), needle)
}

// Filter returns the entries matching term and category, in catalog order.
func Filter(entries []catalog.Descriptor, term string, category CategoryFilter) []catalog.Descriptor {
	out := make([]catalog.Descriptor, 0, len(entries))
	for _, d := range entries {
		if Match(d, term, category) {
			out = append(out, d)
		}
	}
	return out
}
