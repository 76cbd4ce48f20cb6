package shift

import (
	"context"
	"time"
)

// Repository defines data access for shifts.
type Repository interface {
	Create(ctx context.Context, s *Shift) error
	GetByID(ctx context.Context, id string) (*Shift, error)

	// GetActiveByCashier returns the cashier's open shift, or
	// ErrShiftNotFound when none is open.
	GetActiveByCashier(ctx context.Context, cashierID string) (*Shift, error)

	// Close finalizes the shift and stores the reconciliation atomically.
	// Fails with ErrShiftNotOpen if the shift was already closed, so a
	// concurrent close cannot apply twice.
	Close(ctx context.Context, id string, endingCash int64, closedAt time.Time) (*Shift, error)

	ListByCashier(ctx context.Context, cashierID string) ([]*Shift, error)
}
