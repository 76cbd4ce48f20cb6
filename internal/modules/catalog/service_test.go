package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	products map[string]*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: make(map[string]*Product)}
}

func (f *fakeRepo) Create(ctx context.Context, p *Product) error {
	f.products[p.ID.String()] = p
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (f *fakeRepo) List(ctx context.Context, search, category string) ([]*Product, error) {
	var out []*Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) ListLowStock(ctx context.Context) ([]*Product, error) {
	var out []*Product
	for _, p := range f.products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Product) error {
	if _, ok := f.products[p.ID.String()]; !ok {
		return ErrProductNotFound
	}
	f.products[p.ID.String()] = p
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	p, ok := f.products[id]
	if !ok {
		return 0, ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return 0, ErrInsufficientStock
	}
	p.Stock += delta
	return p.Stock, nil
}

func TestCreateProduct(t *testing.T) {
	svc := NewService(newFakeRepo())

	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:      "  Indomie Goreng ",
		Category:  "instant food",
		BuyPrice:  2500,
		SellPrice: 3500,
		Stock:     120,
		MinStock:  24,
	})
	require.NoError(t, err)
	assert.Equal(t, "Indomie Goreng", p.Name)
	assert.Equal(t, "pcs", p.Unit)
	assert.False(t, p.LowStock())
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	cases := []struct {
		name string
		req  CreateProductRequest
	}{
		{"empty name", CreateProductRequest{SellPrice: 1000}},
		{"zero sell price", CreateProductRequest{Name: "X"}},
		{"negative sell price", CreateProductRequest{Name: "X", SellPrice: -1}},
		{"negative buy price", CreateProductRequest{Name: "X", SellPrice: 100, BuyPrice: -1}},
		{"negative stock", CreateProductRequest{Name: "X", SellPrice: 100, Stock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tc.req)
			assert.Error(t, err)
		})
	}
}

func TestUpdateProductPartialFields(t *testing.T) {
	svc := NewService(newFakeRepo())
	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Teh Botol", SellPrice: 5000, Stock: 50,
	})
	require.NoError(t, err)

	newPrice := int64(5500)
	updated, err := svc.UpdateProduct(context.Background(), p.ID.String(), UpdateProductRequest{
		SellPrice: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5500), updated.SellPrice)
	assert.Equal(t, "Teh Botol", updated.Name)
	assert.Equal(t, 50, updated.Stock)
}

func TestAdjustStockDownToZero(t *testing.T) {
	svc := NewService(newFakeRepo())
	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Gula", SellPrice: 14000, Stock: 10,
	})
	require.NoError(t, err)

	updated, err := svc.AdjustStock(context.Background(), p.ID.String(), AdjustStockRequest{Delta: -10})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
}

func TestAdjustStockCannotGoNegative(t *testing.T) {
	svc := NewService(newFakeRepo())
	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Beras", SellPrice: 70000, Stock: 3,
	})
	require.NoError(t, err)

	_, err = svc.AdjustStock(context.Background(), p.ID.String(), AdjustStockRequest{Delta: -4})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, err := svc.GetProduct(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestAdjustStockRejectsZeroDelta(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.AdjustStock(context.Background(), "any", AdjustStockRequest{Delta: 0})
	assert.Error(t, err)
}

func TestListLowStock(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Kopi", SellPrice: 1500, Stock: 5, MinStock: 10,
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Susu", SellPrice: 12000, Stock: 40, MinStock: 10,
	})
	require.NoError(t, err)

	low, err := svc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Kopi", low[0].Name)
}
