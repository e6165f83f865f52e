// Package catalog derives everything the catalog table shows from the fetched items:
// category options, filtered and de-duplicated rows, page windows and price cells.
package catalog

import "strings"

// FilterState holds the user's current filter choices.
// Setting a category clears every category below it.
type FilterState struct {
	Category1Name    string
	Category2Name    string
	Category3Name    string
	SearchQuery      string
	ShowSelectedOnly bool
}

// WithCategory1 selects a top-level category and clears the lower levels.
func (f FilterState) WithCategory1(name string) FilterState {
	f.Category1Name = name
	f.Category2Name = ""
	f.Category3Name = ""
	return f
}

// WithCategory2 selects a second-level category and clears the third level.
func (f FilterState) WithCategory2(name string) FilterState {
	f.Category2Name = name
	f.Category3Name = ""
	return f
}

// WithCategory3 selects a third-level category.
func (f FilterState) WithCategory3(name string) FilterState {
	f.Category3Name = name
	return f
}

// WithSearch replaces the search query.
func (f FilterState) WithSearch(query string) FilterState {
	f.SearchQuery = query
	return f
}

// WithShowSelectedOnly toggles the selected-only restriction.
func (f FilterState) WithShowSelectedOnly(on bool) FilterState {
	f.ShowSelectedOnly = on
	return f
}

// IsZero reports whether no criterion is active.
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

// matchesSearch is a case-insensitive substring match; an empty query matches everything.
func matchesSearch(itemName, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(itemName), strings.ToLower(query))
}
