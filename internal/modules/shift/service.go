package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines the shift lifecycle business logic.
type Service interface {
	// OpenShift opens a till for the cashier. Fails with ErrShiftAlreadyOpen
	// when the cashier already has an open shift.
	OpenShift(ctx context.Context, req OpenShiftRequest) (*Shift, error)

	// CloseShift finalizes the shift with the counted ending cash and
	// returns it with the stored reconciliation. Terminal: the shift is
	// immutable afterwards.
	CloseShift(ctx context.Context, id string, req CloseShiftRequest) (*Shift, error)

	// GetActiveShift returns the cashier's open shift, or nil when none.
	GetActiveShift(ctx context.Context, cashierID string) (*Shift, error)

	GetShift(ctx context.Context, id string) (*Shift, error)
	ListShifts(ctx context.Context, cashierID string) ([]*Shift, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) OpenShift(ctx context.Context, req OpenShiftRequest) (*Shift, error) {
	cashierID, err := uuid.Parse(req.CashierID)
	if err != nil {
		return nil, fmt.Errorf("invalid cashier_id: %w", err)
	}
	if req.StartingCash < 0 {
		return nil, fmt.Errorf("starting_cash cannot be negative")
	}

	// Cheap pre-check for a friendly error; the unique index is the real
	// guard against a double-tap race.
	if _, err := s.repo.GetActiveByCashier(ctx, req.CashierID); err == nil {
		return nil, ErrShiftAlreadyOpen
	} else if !errors.Is(err, ErrShiftNotFound) {
		return nil, err
	}

	sh := &Shift{
		ID:           uuid.New(),
		CashierID:    cashierID,
		OpenedAt:     time.Now().UTC(),
		StartingCash: req.StartingCash,
	}
	if err := s.repo.Create(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *service) CloseShift(ctx context.Context, id string, req CloseShiftRequest) (*Shift, error) {
	if req.EndingCash < 0 {
		return nil, fmt.Errorf("ending_cash cannot be negative")
	}
	return s.repo.Close(ctx, id, req.EndingCash, time.Now().UTC())
}

func (s *service) GetActiveShift(ctx context.Context, cashierID string) (*Shift, error) {
	sh, err := s.repo.GetActiveByCashier(ctx, cashierID)
	if errors.Is(err, ErrShiftNotFound) {
		return nil, nil
	}
	return sh, err
}

func (s *service) GetShift(ctx context.Context, id string) (*Shift, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListShifts(ctx context.Context, cashierID string) ([]*Shift, error) {
	return s.repo.ListByCashier(ctx, cashierID)
}
