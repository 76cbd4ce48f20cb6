package report

import (
	"context"
	"time"
)

// Repository reads settled sales for aggregation. Both queries filter to
// status=success; all shaping happens in Go so the aggregation stays
// unit-testable without a database.
type Repository interface {
	ListSettled(ctx context.Context, from, to time.Time) ([]SettledSale, error)
	ListSoldItems(ctx context.Context, from, to time.Time) ([]SoldItem, error)
}
