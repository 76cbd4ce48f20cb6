package supplier

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	suppliers map[string]*Supplier
	purchases []*Purchase
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{suppliers: make(map[string]*Supplier)}
}

func (f *fakeRepo) Create(ctx context.Context, s *Supplier) error {
	f.suppliers[s.ID.String()] = s
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return nil, ErrSupplierNotFound
	}
	return s, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*Supplier, error) {
	var out []*Supplier
	for _, s := range f.suppliers {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, s *Supplier) error {
	if _, ok := f.suppliers[s.ID.String()]; !ok {
		return ErrSupplierNotFound
	}
	f.suppliers[s.ID.String()] = s
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.suppliers[id]; !ok {
		return ErrSupplierNotFound
	}
	delete(f.suppliers, id)
	return nil
}

func (f *fakeRepo) RecordPurchase(ctx context.Context, p *Purchase) error {
	f.purchases = append(f.purchases, p)
	return nil
}

func (f *fakeRepo) GetPurchase(ctx context.Context, id string) (*Purchase, error) {
	for _, p := range f.purchases {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, ErrPurchaseNotFound
}

func (f *fakeRepo) ListPurchases(ctx context.Context, supplierID string) ([]*Purchase, error) {
	var out []*Purchase
	for _, p := range f.purchases {
		if p.SupplierID.String() == supplierID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestRecordPurchaseComputesTotals(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	sup, err := svc.CreateSupplier(context.Background(), CreateSupplierRequest{Name: "PT Sumber Pangan"})
	require.NoError(t, err)

	p, err := svc.RecordPurchase(context.Background(), RecordPurchaseRequest{
		SupplierID: sup.ID.String(),
		CreatedBy:  uuid.NewString(),
		Items: []PurchaseItemRequest{
			{ProductID: uuid.NewString(), Qty: 10, CostPrice: 2500},
			{ProductID: uuid.NewString(), Qty: 5, CostPrice: 12000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(85000), p.Total)
	require.Len(t, p.Items, 2)
	assert.Equal(t, int64(25000), p.Items[0].Subtotal)
	assert.Equal(t, int64(60000), p.Items[1].Subtotal)
	require.Len(t, repo.purchases, 1)
}

func TestRecordPurchaseRejectsUnknownSupplier(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.RecordPurchase(context.Background(), RecordPurchaseRequest{
		SupplierID: uuid.NewString(),
		CreatedBy:  uuid.NewString(),
		Items:      []PurchaseItemRequest{{ProductID: uuid.NewString(), Qty: 1, CostPrice: 100}},
	})
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestRecordPurchaseRejectsEmptyItems(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	sup, err := svc.CreateSupplier(context.Background(), CreateSupplierRequest{Name: "CV Maju"})
	require.NoError(t, err)

	_, err = svc.RecordPurchase(context.Background(), RecordPurchaseRequest{
		SupplierID: sup.ID.String(),
		CreatedBy:  uuid.NewString(),
	})
	assert.Error(t, err)
	assert.Empty(t, repo.purchases)
}

func TestRecordPurchaseRejectsBadQuantity(t *testing.T) {
	svc := NewService(newFakeRepo())
	sup, err := svc.CreateSupplier(context.Background(), CreateSupplierRequest{Name: "UD Laris"})
	require.NoError(t, err)

	_, err = svc.RecordPurchase(context.Background(), RecordPurchaseRequest{
		SupplierID: sup.ID.String(),
		CreatedBy:  uuid.NewString(),
		Items:      []PurchaseItemRequest{{ProductID: uuid.NewString(), Qty: 0, CostPrice: 100}},
	})
	assert.Error(t, err)
}

func TestUpdateSupplier(t *testing.T) {
	svc := NewService(newFakeRepo())
	sup, err := svc.CreateSupplier(context.Background(), CreateSupplierRequest{Name: "Old Name"})
	require.NoError(t, err)

	updated, err := svc.UpdateSupplier(context.Background(), sup.ID.String(), CreateSupplierRequest{
		Name:  "New Name",
		Phone: "0812-1111-2222",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "0812-1111-2222", updated.Phone)
}
