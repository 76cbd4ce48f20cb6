package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is a grocery catalog item. Prices are whole Rupiah. Stock never
// goes negative; outside admin adjustments it only moves through settlement
// and supplier purchases.
type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	BuyPrice  int64     `json:"buy_price"`
	SellPrice int64     `json:"sell_price"`
	Unit      string    `json:"unit"`
	Stock     int       `json:"stock"`
	MinStock  int       `json:"min_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStock reports whether the product is at or below its minimum threshold.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// CreateProductRequest holds the data for adding a catalog product.
type CreateProductRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	BuyPrice  int64  `json:"buy_price"`
	SellPrice int64  `json:"sell_price"`
	Unit      string `json:"unit"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
}

// UpdateProductRequest carries optional field updates; nil leaves a field
// unchanged. Stock is not editable here — use a stock adjustment.
type UpdateProductRequest struct {
	Name      *string `json:"name,omitempty"`
	Category  *string `json:"category,omitempty"`
	BuyPrice  *int64  `json:"buy_price,omitempty"`
	SellPrice *int64  `json:"sell_price,omitempty"`
	Unit      *string `json:"unit,omitempty"`
	MinStock  *int    `json:"min_stock,omitempty"`
}

// AdjustStockRequest moves stock by a signed delta (admin correction).
type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason,omitempty"`
}
