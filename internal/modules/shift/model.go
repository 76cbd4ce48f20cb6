package shift

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrShiftAlreadyOpen = errors.New("shift already open")
	ErrShiftNotOpen     = errors.New("shift is not open")
)

// Shift is one cashier's till session. It scopes every transaction and the
// cash reconciliation at close. Amounts are whole Rupiah.
//
// At most one shift per cashier may be open at a time (enforced by a partial
// unique index, not a client-side check). TotalSales and TotalTransactions
// move only through settlement while the shift is open and are frozen at
// close; a closed shift is immutable.
type Shift struct {
	ID                uuid.UUID  `json:"id"`
	CashierID         uuid.UUID  `json:"cashier_id"`
	OpenedAt          time.Time  `json:"opened_at"`
	ClosedAt          *time.Time `json:"closed_at,omitempty"`
	StartingCash      int64      `json:"starting_cash"`
	EndingCash        *int64     `json:"ending_cash,omitempty"`
	ExpectedCash      *int64     `json:"expected_cash,omitempty"`
	Difference        *int64     `json:"difference,omitempty"`
	TotalSales        int64      `json:"total_sales"`
	TotalTransactions int        `json:"total_transactions"`
}

// IsOpen reports whether the shift is still accepting settlements.
func (s *Shift) IsOpen() bool {
	return s.ClosedAt == nil
}

// Reconcile computes expected cash and the counted difference at close.
func Reconcile(startingCash, totalSales, endingCash int64) (expected, difference int64) {
	expected = startingCash + totalSales
	difference = endingCash - expected
	return expected, difference
}

// OpenShiftRequest is the payload for opening a till.
type OpenShiftRequest struct {
	CashierID    string `json:"cashier_id"`
	StartingCash int64  `json:"starting_cash"`
}

// CloseShiftRequest is the payload for closing a till with the counted cash.
type CloseShiftRequest struct {
	EndingCash int64 `json:"ending_cash"`
}
