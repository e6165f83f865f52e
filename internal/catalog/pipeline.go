package catalog

import (
	"github.com/Veraticus/procure/internal/model"
)

// Projection is everything derived from one (items, filter, selection) input.
type Projection struct {
	Category1Options []string
	Category2Options []string
	Category3Options []string
	Filtered         []model.CatalogItem
	Visible          []model.CatalogItem
	Unique           []model.CatalogItem
}

// Project runs the whole pipeline. isSelected may be nil when nothing is selected.
func Project(items []model.CatalogItem, filter FilterState, isSelected func(itemID string) bool) Projection {
	filtered := Filter(items, filter)
	visible := VisibleRows(filtered, filter.ShowSelectedOnly, isSelected)

	return Projection{
		Category1Options: Category1Options(items),
		Category2Options: Category2Options(items, filter.Category1Name),
		Category3Options: Category3Options(items, filter.Category2Name),
		Filtered:         filtered,
		Visible:          visible,
		Unique:           UniqueRows(visible),
	}
}

// Category1Options returns every distinct top-level category in first-seen order.
func Category1Options(items []model.CatalogItem) []string {
	return distinct(items, func(model.CatalogItem) bool { return true }, func(i model.CatalogItem) string {
		return i.Category1Name
	})
}

// Category2Options returns the second-level categories under category1.
// Nothing is offered until a top-level category is chosen.
func Category2Options(items []model.CatalogItem, category1 string) []string {
	if category1 == "" {
		return []string{}
	}
	return distinct(items, func(i model.CatalogItem) bool { return i.Category1Name == category1 }, func(i model.CatalogItem) string {
		return i.Category2Name
	})
}

// Category3Options returns the third-level categories under category2.
func Category3Options(items []model.CatalogItem, category2 string) []string {
	if category2 == "" {
		return []string{}
	}
	return distinct(items, func(i model.CatalogItem) bool { return i.Category2Name == category2 }, func(i model.CatalogItem) string {
		return i.Category3Name
	})
}

// Filter keeps the items matching every active criterion. Empty criteria match everything.
func Filter(items []model.CatalogItem, filter FilterState) []model.CatalogItem {
	out := make([]model.CatalogItem, 0, len(items))
	for _, item := range items {
		if filter.Category1Name != "" && item.Category1Name != filter.Category1Name {
			continue
		}
		if filter.Category2Name != "" && item.Category2Name != filter.Category2Name {
			continue
		}
		if filter.Category3Name != "" && item.Category3Name != filter.Category3Name {
			continue
		}
		if !matchesSearch(item.ItemName, filter.SearchQuery) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// VisibleRows restricts filtered to selected items when showSelectedOnly is set.
func VisibleRows(filtered []model.CatalogItem, showSelectedOnly bool, isSelected func(itemID string) bool) []model.CatalogItem {
	if !showSelectedOnly {
		return filtered
	}
	out := make([]model.CatalogItem, 0, len(filtered))
	if isSelected == nil {
		return out
	}
	for _, item := range filtered {
		if isSelected(item.ItemID) {
			out = append(out, item)
		}
	}
	return out
}

// UniqueRows collapses supplier offers to one row per ItemKey, keeping the first occurrence.
func UniqueRows(visible []model.CatalogItem) []model.CatalogItem {
	seen := make(map[model.ItemKey]struct{}, len(visible))
	out := make([]model.CatalogItem, 0, len(visible))
	for _, item := range visible {
		key := item.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// SuppliersFor lists the distinct suppliers offering the item identified by key.
func SuppliersFor(items []model.CatalogItem, key model.ItemKey) []string {
	return distinct(items, func(i model.CatalogItem) bool { return i.Key() == key }, func(i model.CatalogItem) string {
		return i.SupplierName
	})
}

// OffersFor returns every offer for key in catalog order.
func OffersFor(items []model.CatalogItem, key model.ItemKey) []model.CatalogItem {
	var out []model.CatalogItem
	for _, item := range items {
		if item.Key() == key {
			out = append(out, item)
		}
	}
	return out
}

// FindOffer returns the offer for key from supplier.
func FindOffer(items []model.CatalogItem, key model.ItemKey, supplier string) (model.CatalogItem, bool) {
	for _, item := range items {
		if item.SupplierName == supplier && item.Key() == key {
			return item, true
		}
	}
	return model.CatalogItem{}, false
}

// IDs returns the item ids of rows in order.
func IDs(rows []model.CatalogItem) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ItemID
	}
	return ids
}

func distinct(items []model.CatalogItem, keep func(model.CatalogItem) bool, value func(model.CatalogItem) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, item := range items {
		if !keep(item) {
			continue
		}
		v := value(item)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
