package palette

import (
	"fmt"

	"github.com/tuannvm/canvasflow/internal/catalog"
)

// Palette holds the catalog plus the search term and category selection.
type Palette struct {
	entries  []catalog.Descriptor
	search   string
	category CategoryFilter
}

// New creates a palette showing every entry.
func New(entries []catalog.Descriptor) *Palette {
	return &Palette{entries: entries, category: All}
}

// SetEntries replaces the catalog, keeping the current filters.
func (p *Palette) SetEntries(entries []catalog.Descriptor) {
	p.entries = entries
}

// Entries returns the unfiltered catalog.
func (p *Palette) Entries() []catalog.Descriptor {
	return p.entries
}

// SetSearch updates the search term.
func (p *Palette) SetSearch(term string) {
	p.search = term
}

// Search returns the search term.
func (p *Palette) Search() string {
	return p.search
}

// SetCategory selects a category filter.
func (p *Palette) SetCategory(c CategoryFilter) error {
	if _, ok := ParseCategory(string(c)); !ok {
		return fmt.Errorf("unknown category: %s", c)
	}
	p.category = c
	return nil
}

// Category returns the selected category filter.
func (p *Palette) Category() CategoryFilter {
	return p.category
}

// CycleCategory advances to the next category filter, wrapping around.
func (p *Palette) CycleCategory() CategoryFilter {
	for i, c := range CategoryFilters {
		if c == p.category {
			p.category = CategoryFilters[(i+1)%len(CategoryFilters)]
			return p.category
		}
	}
	p.category = All
	return p.category
}

// Visible returns the entries passing the current filters.
func (p *Palette) Visible() []catalog.Descriptor {
	return Filter(p.entries, p.search, p.category)
}

// Empty reports whether no entry passes the current filters.
func (p *Palette) Empty() bool {
	return len(p.Visible()) == 0
}

// DragStart serializes d into a payload for the canvas.
func (p *Palette) DragStart(d catalog.Descriptor) (Payload, error) {
	return Encode(d)
}
