package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, search, category string) ([]*Product, error)
	ListLowStock(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, req AdjustStockRequest) (*Product, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.SellPrice <= 0 {
		return nil, fmt.Errorf("sell_price must be greater than zero")
	}
	if req.BuyPrice < 0 {
		return nil, fmt.Errorf("buy_price cannot be negative")
	}
	if req.Stock < 0 || req.MinStock < 0 {
		return nil, fmt.Errorf("stock and min_stock cannot be negative")
	}
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}
	p := &Product{
		ID:        uuid.New(),
		Name:      req.Name,
		Category:  strings.TrimSpace(req.Category),
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Unit:      unit,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, search, category string) ([]*Product, error) {
	return s.repo.List(ctx, search, category)
}

func (s *service) ListLowStock(ctx context.Context) ([]*Product, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		p.Name = name
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.BuyPrice != nil {
		if *req.BuyPrice < 0 {
			return nil, fmt.Errorf("buy_price cannot be negative")
		}
		p.BuyPrice = *req.BuyPrice
	}
	if req.SellPrice != nil {
		if *req.SellPrice <= 0 {
			return nil, fmt.Errorf("sell_price must be greater than zero")
		}
		p.SellPrice = *req.SellPrice
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return nil, fmt.Errorf("min_stock cannot be negative")
		}
		p.MinStock = *req.MinStock
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) AdjustStock(ctx context.Context, id string, req AdjustStockRequest) (*Product, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("delta must be non-zero")
	}
	if _, err := s.repo.AdjustStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
