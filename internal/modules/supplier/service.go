package supplier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines supplier and purchase business logic.
type Service interface {
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error)
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]*Supplier, error)
	UpdateSupplier(ctx context.Context, id string, req CreateSupplierRequest) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error

	// RecordPurchase validates the delivery and persists it atomically:
	// stock goes up and the cash book records the outflow, or neither.
	RecordPurchase(ctx context.Context, req RecordPurchaseRequest) (*Purchase, error)
	GetPurchase(ctx context.Context, id string) (*Purchase, error)
	ListPurchases(ctx context.Context, supplierID string) ([]*Purchase, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	now := time.Now().UTC()
	sup := &Supplier{
		ID:        uuid.New(),
		Name:      req.Name,
		Contact:   req.Contact,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateSupplier(ctx context.Context, id string, req CreateSupplierRequest) (*Supplier, error) {
	sup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	sup.Name = req.Name
	sup.Contact = req.Contact
	sup.Phone = req.Phone
	sup.Address = req.Address
	sup.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) DeleteSupplier(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) RecordPurchase(ctx context.Context, req RecordPurchaseRequest) (*Purchase, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier_id: %w", err)
	}
	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("invalid created_by: %w", err)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("purchase must have at least one item")
	}
	if _, err := s.repo.GetByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	p := &Purchase{
		ID:         uuid.New(),
		SupplierID: supplierID,
		Notes:      req.Notes,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC(),
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		if item.Qty < 1 {
			return nil, fmt.Errorf("qty must be at least 1")
		}
		if item.CostPrice < 0 {
			return nil, fmt.Errorf("cost_price cannot be negative")
		}
		subtotal := int64(item.Qty) * item.CostPrice
		p.Items = append(p.Items, &PurchaseItem{
			ID:         uuid.New(),
			PurchaseID: p.ID,
			ProductID:  productID,
			Qty:        item.Qty,
			CostPrice:  item.CostPrice,
			Subtotal:   subtotal,
		})
		p.Total += subtotal
	}

	if err := s.repo.RecordPurchase(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetPurchase(ctx context.Context, id string) (*Purchase, error) {
	return s.repo.GetPurchase(ctx, id)
}

func (s *service) ListPurchases(ctx context.Context, supplierID string) ([]*Purchase, error) {
	return s.repo.ListPurchases(ctx, supplierID)
}
