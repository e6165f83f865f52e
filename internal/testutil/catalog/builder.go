// Package catalog provides catalog fixtures for tests: a fluent builder of supplier offers
// and a few predefined catalogs.
//
// Example usage:
//
//	items := catalog.NewBuilder(t).
//		WithFixture(catalog.FixtureStandard).
//		WithOffer("Office", "Paper", "A4", "Copy Paper", "Newco", 12, "USD").
//		Build()
package catalog

import (
	"fmt"
	"testing"

	"github.com/Veraticus/procure/internal/model"
	"github.com/shopspring/decimal"
)

// Builder provides a fluent interface for constructing test catalogs.
type Builder interface {
	// WithOffer appends one supplier offer. Item ids are assigned in insertion order.
	WithOffer(c1, c2, c3, itemName, supplier string, price int64, unit string) Builder

	// WithFixture appends every offer of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// WithGenerated appends n distinct single-offer items under one category path.
	WithGenerated(n int) Builder

	// Build returns the catalog with client defaults applied.
	Build() []model.CatalogItem
}

type catalogBuilder struct {
	t     *testing.T
	items []model.CatalogItem
}

// NewBuilder creates a new catalog builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &catalogBuilder{t: t}
}

func (b *catalogBuilder) WithOffer(c1, c2, c3, itemName, supplier string, price int64, unit string) Builder {
	b.items = append(b.items, model.CatalogItem{
		ItemID:        fmt.Sprintf("i%d", len(b.items)+1),
		Category1Name: c1,
		Category2Name: c2,
		Category3Name: c3,
		ItemName:      itemName,
		SupplierName:  supplier,
		Unit:          unit,
		Price:         decimal.NewFromInt(price),
	})
	return b
}

func (b *catalogBuilder) WithFixture(fixture Fixture) Builder {
	for _, o := range fixture.Offers() {
		b.WithOffer(o.Category1, o.Category2, o.Category3, o.ItemName, o.Supplier, o.Price, o.Unit)
	}
	return b
}

func (b *catalogBuilder) WithGenerated(n int) Builder {
	for i := 1; i <= n; i++ {
		b.WithOffer("Bulk", "Parts", "Misc", fmt.Sprintf("Part %02d", i), "Acme", int64(i), "USD")
	}
	return b
}

func (b *catalogBuilder) Build() []model.CatalogItem {
	b.t.Helper()
	return model.WithClientDefaults(b.items)
}
