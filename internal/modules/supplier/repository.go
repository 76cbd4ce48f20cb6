package supplier

import "context"

// Repository defines data access for suppliers and purchases.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id string) (*Supplier, error)
	List(ctx context.Context) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id string) error

	// RecordPurchase persists the purchase, its items, the stock
	// increments, and the cash-book outflow as one atomic unit.
	RecordPurchase(ctx context.Context, p *Purchase) error
	GetPurchase(ctx context.Context, id string) (*Purchase, error)
	ListPurchases(ctx context.Context, supplierID string) ([]*Purchase, error)
}
