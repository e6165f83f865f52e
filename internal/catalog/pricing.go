package catalog

import (
	"github.com/Veraticus/procure/internal/model"
	"github.com/shopspring/decimal"
)

// Placeholder is shown for cells without a value.
const Placeholder = "-"

var currencySymbols = map[string]string{
	"USD": "$",
	"KRW": "₩",
	"EUR": "€",
	"JPY": "¥",
}

// CurrencySymbol returns the symbol for a currency unit.
func CurrencySymbol(unit string) (string, bool) {
	symbol, ok := currencySymbols[unit]
	return symbol, ok
}

// FormatCellValue renders a table cell. Empty values become the placeholder,
// known units are prefixed with their symbol and unknown units leave the value as is.
func FormatCellValue(value, unit string) string {
	if value == "" {
		return Placeholder
	}
	if symbol, ok := CurrencySymbol(unit); ok {
		return symbol + " " + value
	}
	return value
}

// LineTotal is quantity × price.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// PriceCellView is a rendered price cell.
// Placeholder is true when no supplier is chosen and the cell should be styled as empty.
type PriceCellView struct {
	Text        string
	Placeholder bool
}

// PriceCell prices one table row: the offer of the chosen supplier for key, times quantity.
// A chosen supplier without a matching offer prices at zero.
func PriceCell(items []model.CatalogItem, key model.ItemKey, supplier string, quantity int) PriceCellView {
	if supplier == "" {
		return PriceCellView{Text: Placeholder, Placeholder: true}
	}

	offer, ok := FindOffer(items, key, supplier)
	if !ok {
		return PriceCellView{Text: FormatCellValue(decimal.Zero.String(), "")}
	}

	total := LineTotal(offer.Price, quantity)
	return PriceCellView{Text: FormatCellValue(total.String(), offer.Unit)}
}
