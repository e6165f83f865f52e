package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Client-assigned defaults applied when a catalog is loaded.
const (
	DefaultQuantity = 1
	DefaultLeadTime = 1
)

// CatalogItem is one purchasable offer: a category path, an item, a supplier and a price.
// Several items can share a Key and differ only by supplier and price.
type CatalogItem struct {
	ItemID        string          `json:"itemId"`
	Category1Name string          `json:"category1Name"`
	Category2Name string          `json:"category2Name"`
	Category3Name string          `json:"category3Name"`
	ItemName      string          `json:"itemName"`
	SupplierName  string          `json:"supplierName"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity,omitempty"`
	LeadTime      int             `json:"leadtime,omitempty"`

	// numericID is set when the backend sent itemId as a JSON number.
	numericID bool
}

// ItemKey groups supplier offers for the same item within a category path.
type ItemKey struct {
	Category1 string
	Category2 string
	Category3 string
	ItemName  string
}

// Key returns the grouping key of the item.
func (c CatalogItem) Key() ItemKey {
	return ItemKey{
		Category1: c.Category1Name,
		Category2: c.Category2Name,
		Category3: c.Category3Name,
		ItemName:  c.ItemName,
	}
}

// String renders the key the way rows are identified in the table.
func (k ItemKey) String() string {
	return fmt.Sprintf("%s-%s-%s-%s", k.Category1, k.Category2, k.Category3, k.ItemName)
}

// WithClientDefaults returns a copy of items with quantity and lead time set to their defaults.
// The server never sends either field.
func WithClientDefaults(items []CatalogItem) []CatalogItem {
	out := make([]CatalogItem, len(items))
	for i, item := range items {
		item.Quantity = DefaultQuantity
		item.LeadTime = DefaultLeadTime
		out[i] = item
	}
	return out
}

// CartLine returns the cart entry for quantity units of c. The id keeps the JSON form the backend used.
func (c CatalogItem) CartLine(quantity int) CartLine {
	return CartLine{ItemsID: c.ItemID, Quantity: quantity, numericID: c.numericID}
}

type catalogItemFields CatalogItem

type catalogItemWire struct {
	ItemID json.RawMessage `json:"itemId"`
	catalogItemFields
}

// UnmarshalJSON accepts itemId as either a JSON string or a JSON number.
func (c *CatalogItem) UnmarshalJSON(data []byte) error {
	var wire catalogItemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	id, numeric, err := decodeID(wire.ItemID)
	if err != nil {
		return fmt.Errorf("itemId: %w", err)
	}

	*c = CatalogItem(wire.catalogItemFields)
	c.ItemID = id
	c.numericID = numeric
	return nil
}

// MarshalJSON writes itemId back in the form it was received.
func (c CatalogItem) MarshalJSON() ([]byte, error) {
	id, err := encodeID(c.ItemID, c.numericID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(catalogItemWire{ItemID: id, catalogItemFields: catalogItemFields(c)})
}

// CartLine is a single entry of a cart-add request.
type CartLine struct {
	ItemsID  string `json:"itemsId"`
	Quantity int    `json:"quantity"`

	numericID bool
}

type cartLineWire struct {
	ItemsID  json.RawMessage `json:"itemsId"`
	Quantity int             `json:"quantity"`
}

// UnmarshalJSON accepts itemsId as either a JSON string or a JSON number.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	var wire cartLineWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	id, numeric, err := decodeID(wire.ItemsID)
	if err != nil {
		return fmt.Errorf("itemsId: %w", err)
	}

	*l = CartLine{ItemsID: id, Quantity: wire.Quantity, numericID: numeric}
	return nil
}

// MarshalJSON writes itemsId as a number when the catalog issued a numeric id.
func (l CartLine) MarshalJSON() ([]byte, error) {
	id, err := encodeID(l.ItemsID, l.numericID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(cartLineWire{ItemsID: id, Quantity: l.Quantity})
}

func decodeID(raw json.RawMessage) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, false, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false, err
	}
	return n.String(), true, nil
}

func encodeID(id string, numeric bool) (json.RawMessage, error) {
	if numeric {
		var n json.Number
		if err := json.Unmarshal([]byte(id), &n); err != nil {
			return nil, fmt.Errorf("id %q is not a number: %w", id, err)
		}
		return json.RawMessage(id), nil
	}
	return json.Marshal(id)
}
