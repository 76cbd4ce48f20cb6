package catalog

import "context"

// Repository defines data access for catalog products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, search, category string) ([]*Product, error)
	ListLowStock(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error

	// AdjustStock moves stock by delta as a conditional update: the row is
	// only touched when the resulting stock stays >= 0. Returns the new
	// stock level.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
}
