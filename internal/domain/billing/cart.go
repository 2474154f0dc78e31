package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/shared"
)

// TaxMode decides how GST enters the totals
type TaxMode string

const (
	// TaxModeExclusive adds GST on top of the discounted line amount
	TaxModeExclusive TaxMode = "exclusive"
	// TaxModeNone skips GST entirely; grand total is subtotal minus discount
	TaxModeNone TaxMode = "none"
)

// IsValid checks if the tax mode is a recognized value
func (m TaxMode) IsValid() bool {
	return m == TaxModeExclusive || m == TaxModeNone
}

// CartItem is a single line in a cart. The unit price and the price type are
// pinned when the line is added; later catalog edits do not affect it.
type CartItem struct {
	ProductID       uuid.UUID
	ProductName     string
	SKU             string
	Quantity        int
	PriceType       catalog.PriceType
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	GSTPercent      decimal.Decimal
}

// Subtotal returns unit price times quantity before discount and tax
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DiscountAmount returns the absolute discount for the line
func (i CartItem) DiscountAmount() decimal.Decimal {
	return i.Subtotal().Mul(i.DiscountPercent).Div(decimal.NewFromInt(100))
}

// GSTAmount returns the GST charged on the discounted line amount
func (i CartItem) GSTAmount() decimal.Decimal {
	taxable := i.Subtotal().Sub(i.DiscountAmount())
	return taxable.Mul(i.GSTPercent).Div(decimal.NewFromInt(100))
}

// LineTotal returns the discounted line amount including GST when taxed
func (i CartItem) LineTotal(mode TaxMode) decimal.Decimal {
	total := i.Subtotal().Sub(i.DiscountAmount())
	if mode == TaxModeExclusive {
		total = total.Add(i.GSTAmount())
	}
	return total
}

// CartTotals is the computed summary of a cart
type CartTotals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalGST      decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Cart is a transient billing session. It is never persisted; settling it
// produces an immutable Invoice.
type Cart struct {
	items []CartItem
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{items: make([]CartItem, 0)}
}

// Items returns a copy of the cart lines
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.items)
}

// AddItem adds one unit of the product at the given price type. Adding a
// product already in the cart with the same price type bumps that line's
// quantity instead of creating a duplicate line.
func (c *Cart) AddItem(product *catalog.Product, priceType catalog.PriceType) error {
	if product == nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product cannot be nil")
	}
	if !priceType.IsValid() {
		return shared.NewDomainError("INVALID_PRICE_TYPE", "Price type must be retail or wholesale")
	}

	for idx := range c.items {
		if c.items[idx].ProductID == product.ID && c.items[idx].PriceType == priceType {
			c.items[idx].Quantity++
			return nil
		}
	}

	c.items = append(c.items, CartItem{
		ProductID:       product.ID,
		ProductName:     product.Name,
		SKU:             product.SKU,
		Quantity:        1,
		PriceType:       priceType,
		UnitPrice:       product.PriceFor(priceType),
		DiscountPercent: decimal.Zero,
		GSTPercent:      product.GSTPercent,
	})
	return nil
}

// SetQuantity sets the absolute quantity of a line, floored at 1
func (c *Cart) SetQuantity(index, quantity int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if quantity < 1 {
		quantity = 1
	}
	c.items[index].Quantity = quantity
	return nil
}

// UpdateQuantity adjusts a line's quantity by delta, floored at 1
func (c *Cart) UpdateQuantity(index, delta int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	return c.SetQuantity(index, c.items[index].Quantity+delta)
}

// SetDiscount sets a line's discount percent, clamped to [0, 100]
func (c *Cart) SetDiscount(index int, percent decimal.Decimal) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if percent.IsNegative() {
		percent = decimal.Zero
	}
	if percent.GreaterThan(decimal.NewFromInt(100)) {
		percent = decimal.NewFromInt(100)
	}
	c.items[index].DiscountPercent = percent
	return nil
}

// RemoveItem deletes the line at index
func (c *Cart) RemoveItem(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.items = c.items[:0]
}

// Totals computes the cart summary under the given tax mode. The computation
// is pure; calling it repeatedly yields the same result.
func (c *Cart) Totals(mode TaxMode) CartTotals {
	totals := CartTotals{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalGST:      decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
	for _, item := range c.items {
		totals.Subtotal = totals.Subtotal.Add(item.Subtotal())
		totals.TotalDiscount = totals.TotalDiscount.Add(item.DiscountAmount())
		if mode == TaxModeExclusive {
			totals.TotalGST = totals.TotalGST.Add(item.GSTAmount())
		}
	}
	totals.GrandTotal = totals.Subtotal.Sub(totals.TotalDiscount).Add(totals.TotalGST)
	return totals
}

func (c *Cart) checkIndex(index int) error {
	if index < 0 || index >= len(c.items) {
		return shared.NewDomainError("INVALID_CART_INDEX", "Cart line index out of range")
	}
	return nil
}
