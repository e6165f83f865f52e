package catalog

// Offer is one row of a fixture.
type Offer struct {
	Category1 string
	Category2 string
	Category3 string
	ItemName  string
	Supplier  string
	Unit      string
	Price     int64
}

// Fixture represents a predefined catalog for testing.
type Fixture interface {
	Name() string
	Offers() []Offer
}

type fixture struct {
	name   string
	offers []Offer
}

func (f *fixture) Name() string    { return f.name }
func (f *fixture) Offers() []Offer { return f.offers }

// Predefined fixtures.
var (
	// FixtureStandard is a two-department catalog where "Copy Paper" has two suppliers.
	// Item ids are i1..i7 in this order.
	FixtureStandard = &fixture{
		name: "Standard",
		offers: []Offer{
			{"Office", "Paper", "A4", "Copy Paper", "Acme", "USD", 10},
			{"Office", "Paper", "A4", "Copy Paper", "Zeta", "USD", 8},
			{"Office", "Paper", "A3", "Drawing Paper", "Acme", "USD", 15},
			{"Office", "Pens", "Gel", "Gel Pen", "Inko", "EUR", 2},
			{"Lab", "Glassware", "Beakers", "Beaker 250ml", "Sci", "KRW", 3000},
			{"Lab", "Glassware", "Flasks", "Erlenmeyer Flask", "Sci", "JPY", 500},
			{"Lab", "Paper", "Filters", "Filter Paper", "Sci", "GBP", 7},
		},
	}

	// FixtureSingleItem is one item offered by two suppliers.
	FixtureSingleItem = &fixture{
		name: "SingleItem",
		offers: []Offer{
			{"Office", "Paper", "A4", "Copy Paper", "Acme", "USD", 10},
			{"Office", "Paper", "A4", "Copy Paper", "Zeta", "USD", 8},
		},
	}
)
