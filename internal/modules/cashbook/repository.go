package cashbook

import (
	"context"
	"time"
)

// Repository defines data access for the cash book.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*Entry, error)
	Summarize(ctx context.Context, from, to time.Time) (*Summary, error)
}
