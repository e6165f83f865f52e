package viewmodel

import (
	"fmt"
	"slices"

	"github.com/Veraticus/procure/internal/catalog"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/selection"
)

// CatalogView is the state behind the catalog table: the fetched items, the committed
// base rows, the filter, the page and the user's selection and drafts.
// All derived rows are recomputed after every mutation.
type CatalogView struct {
	selection *selection.Store
	catalog   []model.CatalogItem
	base      []model.CatalogItem
	proj      catalog.Projection
	filter    catalog.FilterState
	page      catalog.PageState
	cursor    int
}

// RowView is one rendered table row.
type RowView struct {
	Key        model.ItemKey
	ItemID     string
	Category1  string
	Category2  string
	Category3  string
	ItemName   string
	Supplier   string
	Price      catalog.PriceCellView
	Suppliers  []string
	Quantity   int
	IsSelected bool
	IsCursor   bool
}

// HeaderView summarizes the table header and pager.
type HeaderView struct {
	Filter        catalog.FilterState
	SelectedCount int
	UniqueCount   int
	VisibleCount  int
	Page          int
	PageSize      int
	TotalPages    int
	Checked       bool
	Indeterminate bool
}

// LeadTimeView is one supplier offer in the lead-time overlay.
type LeadTimeView struct {
	Supplier string
	Price    string
	LeadTime int
	IsChosen bool
}

// NewCatalogView creates an empty view with the given page size.
func NewCatalogView(pageSize int) *CatalogView {
	v := &CatalogView{
		selection: selection.NewStore(),
		page:      catalog.NewPageState(pageSize),
	}
	v.refresh()
	return v
}

// Load replaces the catalog and the base rows. Selection and drafts survive a reload.
func (v *CatalogView) Load(items []model.CatalogItem) {
	v.catalog = slices.Clone(items)
	v.base = v.catalog
	v.refresh()
}

// Len is the number of fetched items.
func (v *CatalogView) Len() int {
	return len(v.catalog)
}

// Filter returns the current filter.
func (v *CatalogView) Filter() catalog.FilterState {
	return v.filter
}

// Page returns the current page state.
func (v *CatalogView) Page() catalog.PageState {
	return v.page
}

// Selection exposes the selection store.
func (v *CatalogView) Selection() *selection.Store {
	return v.selection
}

// Category1Options lists the top-level categories of the base rows.
func (v *CatalogView) Category1Options() []string { return v.proj.Category1Options }

// Category2Options lists second-level categories under the chosen top level.
func (v *CatalogView) Category2Options() []string { return v.proj.Category2Options }

// Category3Options lists third-level categories under the chosen second level.
func (v *CatalogView) Category3Options() []string { return v.proj.Category3Options }

// SetCategory1 selects a top-level category ("" for all).
func (v *CatalogView) SetCategory1(name string) {
	v.setFilter(v.filter.WithCategory1(name))
}

// SetCategory2 selects a second-level category ("" for all).
func (v *CatalogView) SetCategory2(name string) {
	v.setFilter(v.filter.WithCategory2(name))
}

// SetCategory3 selects a third-level category ("" for all).
func (v *CatalogView) SetCategory3(name string) {
	v.setFilter(v.filter.WithCategory3(name))
}

// SetSearch updates the query; displayed rows follow as the user types.
func (v *CatalogView) SetSearch(query string) {
	if query == v.filter.SearchQuery {
		return
	}
	v.setFilter(v.filter.WithSearch(query))
}

// CommitSearch makes the currently filtered rows the new base.
func (v *CatalogView) CommitSearch() {
	v.base = slices.Clone(v.proj.Filtered)
	v.page = v.page.Reset()
	v.refresh()
}

// ClearSearch restores the fetched catalog as the base and clears the query.
func (v *CatalogView) ClearSearch() {
	v.base = v.catalog
	v.filter = v.filter.WithSearch("")
	v.page = v.page.Reset()
	v.refresh()
}

// ToggleShowSelected switches between all rows and selected rows only.
func (v *CatalogView) ToggleShowSelected() {
	v.setFilter(v.filter.WithShowSelectedOnly(!v.filter.ShowSelectedOnly))
}

// SetPageSize changes the page size and returns to page 1.
func (v *CatalogView) SetPageSize(size int) error {
	page, err := v.page.WithSize(size)
	if err != nil {
		return err
	}
	v.page = page
	v.refresh()
	return nil
}

// CyclePageSize moves to the next offered page size.
func (v *CatalogView) CyclePageSize() {
	v.page = v.page.NextSize()
	v.refresh()
}

// TotalPages counts pages over the visible rows, before supplier offers are collapsed.
func (v *CatalogView) TotalPages() int {
	return v.page.TotalPages(len(v.proj.Visible))
}

// SetPage moves to page n, kept within [1, TotalPages].
func (v *CatalogView) SetPage(n int) {
	total := max(v.TotalPages(), 1)
	v.page = v.page.WithNumber(min(n, total))
	v.clampCursor()
}

// NextPage moves forward one page.
func (v *CatalogView) NextPage() {
	v.SetPage(v.page.Number + 1)
}

// PrevPage moves back one page.
func (v *CatalogView) PrevPage() {
	v.SetPage(v.page.Number - 1)
}

// MoveCursor moves the row cursor within the current page.
func (v *CatalogView) MoveCursor(delta int) {
	v.cursor += delta
	v.clampCursor()
}

// Cursor returns the cursor index within the current page.
func (v *CatalogView) Cursor() int {
	return v.cursor
}

// CursorRow returns the item under the cursor.
func (v *CatalogView) CursorRow() (model.CatalogItem, bool) {
	rows := v.pageRows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return model.CatalogItem{}, false
	}
	return rows[v.cursor], true
}

// ToggleCursorRow flips selection of the row under the cursor.
func (v *CatalogView) ToggleCursorRow() {
	row, ok := v.CursorRow()
	if !ok {
		return
	}
	v.selection.ToggleOne(row.ItemID)
	v.refresh()
}

// ToggleAll drives the header checkbox: select every unique row unless all already are.
func (v *CatalogView) ToggleAll() {
	ids := catalog.IDs(v.proj.Unique)
	checked := !v.selection.AllVisibleSelected(ids)
	v.selection.ToggleAllVisible(checked, ids)
	v.refresh()
}

// SetQuantity parses raw as the cursor row's quantity and returns the stored value.
func (v *CatalogView) SetQuantity(raw string) int {
	row, ok := v.CursorRow()
	if !ok {
		return 0
	}
	return v.selection.SetQuantity(row.ItemID, raw)
}

// AdjustQuantity changes the cursor row's quantity by delta, never below 1.
func (v *CatalogView) AdjustQuantity(delta int) int {
	row, ok := v.CursorRow()
	if !ok {
		return 0
	}
	return v.selection.AdjustQuantity(row.ItemID, delta)
}

// Suppliers lists the suppliers offering the cursor row's item.
func (v *CatalogView) Suppliers() []string {
	row, ok := v.CursorRow()
	if !ok {
		return nil
	}
	return catalog.SuppliersFor(v.base, row.Key())
}

// CycleSupplier picks the next supplier for the cursor row, starting from the first.
func (v *CatalogView) CycleSupplier() string {
	row, ok := v.CursorRow()
	if !ok {
		return ""
	}
	suppliers := catalog.SuppliersFor(v.base, row.Key())
	if len(suppliers) == 0 {
		return ""
	}
	idx := slices.Index(suppliers, v.selection.Supplier(row.ItemID))
	next := suppliers[(idx+1)%len(suppliers)]
	v.selection.SetSupplier(row.ItemID, next)
	return next
}

// SetSupplier chooses supplier for the cursor row. The supplier must offer the item.
func (v *CatalogView) SetSupplier(supplier string) error {
	row, ok := v.CursorRow()
	if !ok {
		return fmt.Errorf("no row under cursor")
	}
	if !slices.Contains(catalog.SuppliersFor(v.base, row.Key()), supplier) {
		return fmt.Errorf("%q does not offer %s", supplier, row.ItemName)
	}
	v.selection.SetSupplier(row.ItemID, supplier)
	return nil
}

// Rows renders the current page.
func (v *CatalogView) Rows() []RowView {
	rows := v.pageRows()
	out := make([]RowView, len(rows))
	for i, row := range rows {
		key := row.Key()
		supplier := v.selection.Supplier(row.ItemID)
		quantity := v.selection.Quantity(row.ItemID)
		out[i] = RowView{
			Key:        key,
			ItemID:     row.ItemID,
			Category1:  catalog.FormatCellValue(row.Category1Name, ""),
			Category2:  catalog.FormatCellValue(row.Category2Name, ""),
			Category3:  catalog.FormatCellValue(row.Category3Name, ""),
			ItemName:   catalog.FormatCellValue(row.ItemName, ""),
			Supplier:   supplier,
			Suppliers:  catalog.SuppliersFor(v.base, key),
			Quantity:   quantity,
			Price:      catalog.PriceCell(v.base, key, supplier, quantity),
			IsSelected: v.selection.IsSelected(row.ItemID),
			IsCursor:   i == v.cursor,
		}
	}
	return out
}

// Header summarizes selection and paging.
func (v *CatalogView) Header() HeaderView {
	ids := catalog.IDs(v.proj.Unique)
	return HeaderView{
		Filter:        v.filter,
		SelectedCount: v.selection.Count(),
		UniqueCount:   len(v.proj.Unique),
		VisibleCount:  len(v.proj.Visible),
		Page:          v.page.Number,
		PageSize:      v.page.Size,
		TotalPages:    v.TotalPages(),
		Checked:       v.selection.AllVisibleSelected(ids),
		Indeterminate: v.selection.SomeVisibleSelected(ids),
	}
}

// CartLines returns the selected unique rows as cart lines.
func (v *CatalogView) CartLines() []model.CartLine {
	return v.selection.CartLines(v.proj.Unique)
}

// LeadTimes lists every supplier offer for key with its price and lead time.
func (v *CatalogView) LeadTimes(key model.ItemKey, chosen string) []LeadTimeView {
	offers := catalog.OffersFor(v.base, key)
	out := make([]LeadTimeView, 0, len(offers))
	for _, offer := range offers {
		leadTime := offer.LeadTime
		if leadTime < 1 {
			leadTime = model.DefaultLeadTime
		}
		out = append(out, LeadTimeView{
			Supplier: offer.SupplierName,
			Price:    catalog.FormatCellValue(offer.Price.String(), offer.Unit),
			LeadTime: leadTime,
			IsChosen: offer.SupplierName == chosen,
		})
	}
	return out
}

// CursorLeadTimes returns the lead-time overlay for the cursor row.
func (v *CatalogView) CursorLeadTimes() (model.CatalogItem, []LeadTimeView, bool) {
	row, ok := v.CursorRow()
	if !ok {
		return model.CatalogItem{}, nil, false
	}
	return row, v.LeadTimes(row.Key(), v.selection.Supplier(row.ItemID)), true
}

func (v *CatalogView) setFilter(filter catalog.FilterState) {
	v.filter = filter
	v.page = v.page.Reset()
	v.refresh()
}

func (v *CatalogView) refresh() {
	v.proj = catalog.Project(v.base, v.filter, v.selection.IsSelected)
	v.clampCursor()
}

func (v *CatalogView) pageRows() []model.CatalogItem {
	return catalog.Paginate(v.proj.Unique, v.page)
}

func (v *CatalogView) clampCursor() {
	n := len(v.pageRows())
	if n == 0 {
		v.cursor = 0
		return
	}
	v.cursor = min(max(v.cursor, 0), n-1)
}
