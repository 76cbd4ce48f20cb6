package sales

import (
	"context"
	"time"
)

// Repository defines data access for settled transactions.
type Repository interface {
	// Settle persists the transaction, its items, the cash-book entry, the
	// stock decrements, and the shift totals bump as one atomic unit. Any
	// failure rolls the whole settlement back: a partial settlement (stock
	// decremented but no transaction row) must be impossible.
	Settle(ctx context.Context, tx *Transaction) error

	GetByID(ctx context.Context, id string) (*Transaction, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Transaction, error)
	ListByShift(ctx context.Context, shiftID string) ([]*Transaction, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*Transaction, error)

	// Refund flips status success → refund and applies the policy's
	// reversals in the same transaction.
	Refund(ctx context.Context, id string, policy RefundPolicy) (*Transaction, error)
}
