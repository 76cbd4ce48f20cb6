package cashbook

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEntryNotFound = errors.New("cash book entry not found")

// EntryType is the direction of a cash movement.
type EntryType string

const (
	EntryIn  EntryType = "in"
	EntryOut EntryType = "out"
)

func (t EntryType) Valid() bool { return t == EntryIn || t == EntryOut }

// EntrySource says what produced the entry. Transaction and purchase
// entries are written by their own modules inside the same DB transaction;
// manual entries come through the API.
type EntrySource string

const (
	SourceTransaction EntrySource = "transaction"
	SourcePurchase    EntrySource = "purchase"
	SourceManual      EntrySource = "manual"
)

// Entry is one append-only cash movement. Amount is always positive;
// direction lives in Type.
type Entry struct {
	ID          uuid.UUID   `json:"id"`
	Type        EntryType   `json:"entry_type"`
	Source      EntrySource `json:"source"`
	Amount      int64       `json:"amount"`
	Description string      `json:"description"`
	ReferenceID *uuid.UUID  `json:"reference_id,omitempty"`
	CreatedBy   *uuid.UUID  `json:"created_by,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Summary is the aggregate over a date range.
type Summary struct {
	TotalIn  int64 `json:"total_in"`
	TotalOut int64 `json:"total_out"`
	Balance  int64 `json:"balance"`
}

// CreateEntryRequest is a manual adjustment (opening float top-up, petty
// cash out, owner withdrawal).
type CreateEntryRequest struct {
	Type        string `json:"entry_type"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}
