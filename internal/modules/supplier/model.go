package supplier

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
)

// Supplier is a goods source for restocking.
type Supplier struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Purchase is a restock delivery. Recording it bumps stock and writes the
// cash-book outflow in the same DB transaction.
type Purchase struct {
	ID         uuid.UUID       `json:"id"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	Total      int64           `json:"total"`
	Notes      string          `json:"notes,omitempty"`
	Items      []*PurchaseItem `json:"items,omitempty"`
	CreatedBy  uuid.UUID       `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PurchaseItem is one restocked product line. CostPrice is per unit.
type PurchaseItem struct {
	ID         uuid.UUID `json:"id"`
	PurchaseID uuid.UUID `json:"purchase_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Qty        int       `json:"qty"`
	CostPrice  int64     `json:"cost_price"`
	Subtotal   int64     `json:"subtotal"`
}

type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PurchaseItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
	CostPrice int64  `json:"cost_price"`
}

type RecordPurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Items      []PurchaseItemRequest `json:"items"`
	Notes      string                `json:"notes"`
	CreatedBy  string                `json:"created_by"`
}
