package cashbook

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines cash book business logic. Only manual entries go through
// here: transaction and purchase entries are written by the sales and
// supplier modules atomically with their own rows.
type Service interface {
	CreateManualEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error)
	GetEntry(ctx context.Context, id string) (*Entry, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*Entry, error)
	Summarize(ctx context.Context, from, to time.Time) (*Summary, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateManualEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	entryType := EntryType(req.Type)
	if !entryType.Valid() {
		return nil, fmt.Errorf("entry_type must be in or out")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if req.Description == "" {
		return nil, fmt.Errorf("description is required")
	}
	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("invalid created_by: %w", err)
	}

	e := &Entry{
		ID:          uuid.New(),
		Type:        entryType,
		Source:      SourceManual,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedBy:   &createdBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetEntry(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRange(ctx context.Context, from, to time.Time) ([]*Entry, error) {
	return s.repo.ListRange(ctx, from, to)
}

func (s *service) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	return s.repo.Summarize(ctx, from, to)
}
