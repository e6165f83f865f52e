// Package selection tracks which catalog items the user picked and the draft
// quantity and supplier chosen for each, separately from the fetched catalog.
package selection

import (
	"strconv"
	"strings"

	"github.com/Veraticus/procure/internal/model"
)

// Draft is the user's pending choice for one item.
type Draft struct {
	Supplier string
	Quantity int
}

// Store holds selected item ids and per-item drafts.
// It is owned by a single UI loop and is not safe for concurrent use.
type Store struct {
	selected map[string]struct{}
	drafts   map[string]Draft
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		selected: make(map[string]struct{}),
		drafts:   make(map[string]Draft),
	}
}

// ToggleOne flips membership of itemID.
func (s *Store) ToggleOne(itemID string) {
	if _, ok := s.selected[itemID]; ok {
		delete(s.selected, itemID)
		return
	}
	s.selected[itemID] = struct{}{}
}

// ToggleAllVisible adds every visible id when checked, otherwise removes exactly the visible ids.
// Selections outside visibleIDs are never touched.
func (s *Store) ToggleAllVisible(checked bool, visibleIDs []string) {
	for _, id := range visibleIDs {
		if checked {
			s.selected[id] = struct{}{}
		} else {
			delete(s.selected, id)
		}
	}
}

// AllVisibleSelected reports whether visibleIDs is non-empty and fully selected.
func (s *Store) AllVisibleSelected(visibleIDs []string) bool {
	if len(visibleIDs) == 0 {
		return false
	}
	for _, id := range visibleIDs {
		if !s.IsSelected(id) {
			return false
		}
	}
	return true
}

// SomeVisibleSelected reports the indeterminate state: some but not all visible ids selected.
func (s *Store) SomeVisibleSelected(visibleIDs []string) bool {
	n := 0
	for _, id := range visibleIDs {
		if s.IsSelected(id) {
			n++
		}
	}
	return n > 0 && n < len(visibleIDs)
}

// IsSelected reports whether itemID is selected.
func (s *Store) IsSelected(itemID string) bool {
	_, ok := s.selected[itemID]
	return ok
}

// Count returns the number of selected ids.
func (s *Store) Count() int {
	return len(s.selected)
}

// Clear drops every selection. Drafts are kept.
func (s *Store) Clear() {
	s.selected = make(map[string]struct{})
}

// SetSupplier records the chosen supplier for itemID.
func (s *Store) SetSupplier(itemID, supplierName string) {
	d := s.draft(itemID)
	d.Supplier = supplierName
	s.drafts[itemID] = d
}

// Supplier returns the chosen supplier for itemID, or "" when none was chosen.
func (s *Store) Supplier(itemID string) string {
	return s.drafts[itemID].Supplier
}

// SetQuantity parses raw, clamps it to at least 1, stores it and returns the stored value.
func (s *Store) SetQuantity(itemID, raw string) int {
	qty := ParseQuantity(raw)
	s.setQuantity(itemID, qty)
	return qty
}

// AdjustQuantity adds delta to the current quantity, never going below 1.
func (s *Store) AdjustQuantity(itemID string, delta int) int {
	qty := max(s.Quantity(itemID)+delta, 1)
	s.setQuantity(itemID, qty)
	return qty
}

// Quantity returns the draft quantity for itemID, defaulting to 1.
func (s *Store) Quantity(itemID string) int {
	return s.draft(itemID).Quantity
}

// CartLines maps the selected rows, in the given order, to cart lines.
func (s *Store) CartLines(rows []model.CatalogItem) []model.CartLine {
	lines := make([]model.CartLine, 0, len(rows))
	for _, row := range rows {
		if !s.IsSelected(row.ItemID) {
			continue
		}
		lines = append(lines, row.CartLine(s.Quantity(row.ItemID)))
	}
	return lines
}

func (s *Store) setQuantity(itemID string, qty int) {
	d := s.draft(itemID)
	d.Quantity = qty
	s.drafts[itemID] = d
}

func (s *Store) draft(itemID string) Draft {
	d, ok := s.drafts[itemID]
	if !ok || d.Quantity < 1 {
		d.Quantity = model.DefaultQuantity
	}
	return d
}

// ParseQuantity parses a quantity typed by the user. Anything that isn't an integer of at least 1 becomes 1.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
