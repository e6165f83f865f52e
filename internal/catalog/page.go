package catalog

import (
	"fmt"
	"slices"
)

// PageSizes are the page sizes the table offers.
var PageSizes = []int{5, 10, 15}

// DefaultPageSize is the page size a fresh table starts with.
const DefaultPageSize = 5

// PageState is a 1-based page number and a page size.
type PageState struct {
	Number int
	Size   int
}

// NewPageState returns page 1 with the given size, falling back to DefaultPageSize.
func NewPageState(size int) PageState {
	if !IsValidPageSize(size) {
		size = DefaultPageSize
	}
	return PageState{Number: 1, Size: size}
}

// IsValidPageSize reports whether size is one of PageSizes.
func IsValidPageSize(size int) bool {
	return slices.Contains(PageSizes, size)
}

// WithSize changes the page size and goes back to page 1.
func (p PageState) WithSize(size int) (PageState, error) {
	if !IsValidPageSize(size) {
		return p, fmt.Errorf("page size %d not in %v", size, PageSizes)
	}
	return PageState{Number: 1, Size: size}, nil
}

// NextSize cycles through PageSizes and goes back to page 1.
func (p PageState) NextSize() PageState {
	idx := slices.Index(PageSizes, p.Size)
	next := PageSizes[(idx+1)%len(PageSizes)]
	return PageState{Number: 1, Size: next}
}

// WithNumber moves to page n. Pages below 1 become 1; there is no upper clamp.
func (p PageState) WithNumber(n int) PageState {
	p.Number = max(n, 1)
	return p
}

// Reset goes back to page 1.
func (p PageState) Reset() PageState {
	p.Number = 1
	return p
}

// Window returns the half-open slice bounds of the current page over n rows.
func (p PageState) Window(n int) (start, end int) {
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	number := max(p.Number, 1)
	start = min((number-1)*size, n)
	end = min(number*size, n)
	return start, end
}

// TotalPages is ceil(count / size).
func (p PageState) TotalPages(count int) int {
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	return (count + size - 1) / size
}

// Paginate returns the rows on the current page.
func Paginate[T any](rows []T, page PageState) []T {
	start, end := page.Window(len(rows))
	return rows[start:end]
}
