package cart

import (
	"math"

	"github.com/google/uuid"
)

// Cart holds one terminal's in-progress sale. Lines keep insertion order,
// which is the display order. All derived figures are recomputed on every
// call; nothing is cached.
//
// The cart itself does not check shift state or stock — those guards belong
// to the caller. Mutations on a product id that is not in the cart are
// no-ops, not errors.
type Cart struct {
	lines      []*Line
	discount   Discount
	taxRate    float64
	customerID *uuid.UUID
	notes      string
}

// New creates an empty cart with the store-wide flat tax rate (percent).
func New(taxRatePercent float64) *Cart {
	return &Cart{taxRate: taxRatePercent}
}

func (c *Cart) find(productID uuid.UUID) *Line {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}

// AddItem adds qty units of the product, or increments the existing line.
// Quantities below 1 are normalized to 1.
func (c *Cart) AddItem(p ProductSnapshot, qty int) {
	if qty < 1 {
		qty = 1
	}
	if l := c.find(p.ID); l != nil {
		l.Qty += qty
		return
	}
	c.lines = append(c.lines, &Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.SellPrice,
		Stock:     p.Stock,
		Qty:       qty,
	})
}

// UpdateQuantity sets a line's quantity; qty <= 0 removes the line entirely.
// Returns false when the product is not in the cart.
func (c *Cart) UpdateQuantity(productID uuid.UUID, qty int) bool {
	l := c.find(productID)
	if l == nil {
		return false
	}
	if qty <= 0 {
		return c.RemoveItem(productID)
	}
	l.Qty = qty
	return true
}

// RemoveItem deletes the matching line. Returns false when absent.
func (c *Cart) RemoveItem(productID uuid.UUID) bool {
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetItemDiscount stores a line-level discount. It is applied at
// total-computation time, never baked into the line subtotal.
func (c *Cart) SetItemDiscount(productID uuid.UUID, d Discount) bool {
	l := c.find(productID)
	if l == nil {
		return false
	}
	l.Discount = d
	return true
}

// SetCartDiscount stores the cart-level discount.
func (c *Cart) SetCartDiscount(d Discount) {
	c.discount = d
}

// SetCustomer attaches an optional customer reference; nil detaches.
func (c *Cart) SetCustomer(id *uuid.UUID) {
	c.customerID = id
}

// SetNotes sets free-form notes for the eventual transaction.
func (c *Cart) SetNotes(notes string) {
	c.notes = notes
}

// Clear empties the cart back to its initial state, keeping the tax rate.
func (c *Cart) Clear() {
	c.lines = nil
	c.discount = Discount{}
	c.customerID = nil
	c.notes = ""
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Subtotal is the sum of line subtotals, discount-free.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.Subtotal()
	}
	return sum
}

// ItemsDiscount is the sum of line-level discounts.
func (c *Cart) ItemsDiscount() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.Discount.Apply(l.Subtotal(), l.Qty)
	}
	return sum
}

// CartDiscount computes the cart-level discount off the post-item-discount
// base. Fixed cart discounts are flat, not scaled.
func (c *Cart) CartDiscount() int64 {
	return c.discount.Apply(c.Subtotal()-c.ItemsDiscount(), 1)
}

// Tax computes the flat tax off the post-all-discounts base, rounded to the
// nearest Rupiah.
func (c *Cart) Tax() int64 {
	base := c.Subtotal() - c.ItemsDiscount() - c.CartDiscount()
	return int64(math.Round(float64(base) * c.taxRate / 100))
}

// Total is subtotal − itemsDiscount − cartDiscount + tax. The order of
// operations is fixed: item discounts first, then cart discount off the
// reduced base, then tax off the fully discounted base.
func (c *Cart) Total() int64 {
	return c.Subtotal() - c.ItemsDiscount() - c.CartDiscount() + c.Tax()
}

// TotalItemCount is the sum of line quantities.
func (c *Cart) TotalItemCount() int {
	var n int
	for _, l := range c.lines {
		n += l.Qty
	}
	return n
}

// CustomerID returns the attached customer, if any.
func (c *Cart) CustomerID() *uuid.UUID {
	return c.customerID
}

// Notes returns the cart notes.
func (c *Cart) Notes() string {
	return c.notes
}

// Totals snapshots the cart and all derived figures. Lines are copied so the
// caller cannot mutate cart state through the snapshot.
func (c *Cart) Totals() Totals {
	lines := make([]Line, len(c.lines))
	for i, l := range c.lines {
		lines[i] = *l
	}
	return Totals{
		Lines:          lines,
		Subtotal:       c.Subtotal(),
		ItemsDiscount:  c.ItemsDiscount(),
		CartDiscount:   c.CartDiscount(),
		Tax:            c.Tax(),
		Total:          c.Total(),
		TotalItemCount: c.TotalItemCount(),
		TaxRatePercent: c.taxRate,
		CustomerID:     c.customerID,
		Notes:          c.notes,
	}
}
