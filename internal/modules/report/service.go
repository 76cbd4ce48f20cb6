package report

import (
	"context"
	"time"
)

// Service builds reports from settled sales. Queries fetch raw rows; all
// shaping goes through the pure builders in aggregate.go, so re-running a
// report over a closed day always yields the same numbers.
type Service interface {
	DailySales(ctx context.Context, from, to time.Time) ([]DailySales, error)
	PaymentBreakdown(ctx context.Context, from, to time.Time) ([]PaymentBreakdown, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
	Summarize(ctx context.Context, from, to time.Time) (Summary, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) DailySales(ctx context.Context, from, to time.Time) ([]DailySales, error) {
	sales, err := s.repo.ListSettled(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return BuildDailySales(sales, from, to), nil
}

func (s *service) PaymentBreakdown(ctx context.Context, from, to time.Time) ([]PaymentBreakdown, error) {
	sales, err := s.repo.ListSettled(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return BuildPaymentBreakdown(sales), nil
}

func (s *service) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error) {
	items, err := s.repo.ListSoldItems(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return BuildTopProducts(items, limit), nil
}

func (s *service) Summarize(ctx context.Context, from, to time.Time) (Summary, error) {
	sales, err := s.repo.ListSettled(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return Summary{}, err
	}
	return BuildSummary(sales), nil
}
