package cart

import (
	"math"

	"github.com/google/uuid"
)

// DiscountKind tags how a discount value is interpreted.
type DiscountKind string

const (
	DiscountNone    DiscountKind = ""
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// Discount is a percent-or-fixed price reduction. Percent discounts carry a
// rate, fixed discounts an amount in whole Rupiah; the zero value is no
// discount.
type Discount struct {
	Kind    DiscountKind `json:"kind"`
	Percent float64      `json:"percent,omitempty"`
	Amount  int64        `json:"amount,omitempty"`
}

// PercentDiscount builds a percent discount, e.g. PercentDiscount(10) for 10%.
func PercentDiscount(rate float64) Discount {
	return Discount{Kind: DiscountPercent, Percent: rate}
}

// FixedDiscount builds a fixed Rupiah discount.
func FixedDiscount(amount int64) Discount {
	return Discount{Kind: DiscountFixed, Amount: amount}
}

// Apply returns the discount amount for the given base. Percent discounts
// compute off base and round to the nearest Rupiah; fixed discounts are per
// unit and multiply by qty. Cart-level callers pass qty=1.
func (d Discount) Apply(base int64, qty int) int64 {
	switch d.Kind {
	case DiscountPercent:
		return int64(math.Round(float64(base) * d.Percent / 100))
	case DiscountFixed:
		return d.Amount * int64(qty)
	default:
		return 0
	}
}

// ProductSnapshot is what the cart captures from the catalog when a product
// is added. Later catalog edits must not reprice an in-progress sale.
type ProductSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SellPrice int64     `json:"sell_price"`
	Stock     int       `json:"stock"`
}

// Line is one product entry in a cart.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Stock     int       `json:"stock"`
	Qty       int       `json:"qty"`
	Discount  Discount  `json:"discount"`
}

// Subtotal is quantity × unit price, discount-free. Always recomputed from
// its inputs, never stored.
func (l Line) Subtotal() int64 {
	return int64(l.Qty) * l.UnitPrice
}

// Totals is the priced view of a cart returned to the UI after every
// mutation.
type Totals struct {
	Lines          []Line     `json:"lines"`
	Subtotal       int64      `json:"subtotal"`
	ItemsDiscount  int64      `json:"items_discount"`
	CartDiscount   int64      `json:"cart_discount"`
	Tax            int64      `json:"tax"`
	Total          int64      `json:"total"`
	TotalItemCount int        `json:"total_item_count"`
	TaxRatePercent float64    `json:"tax_rate_percent"`
	CustomerID     *uuid.UUID `json:"customer_id,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// AddItemRequest is the payload for adding a product to a terminal's cart.
type AddItemRequest struct {
	CashierID string `json:"cashier_id"`
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// UpdateQuantityRequest sets a line's quantity; qty <= 0 removes the line.
type UpdateQuantityRequest struct {
	Qty int `json:"qty"`
}

// DiscountRequest is the payload for line- or cart-level discounts.
type DiscountRequest struct {
	Kind    string  `json:"kind"`
	Percent float64 `json:"percent,omitempty"`
	Amount  int64   `json:"amount,omitempty"`
}

// SetCustomerRequest attaches an optional customer to the cart.
type SetCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// SetNotesRequest sets free-form notes carried onto the transaction.
type SetNotesRequest struct {
	Notes string `json:"notes"`
}
