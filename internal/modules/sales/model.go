package sales

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrShiftNotOpen        = errors.New("shift is not open")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrTotalMismatch       = errors.New("total does not match subtotal - discount + tax")
	ErrNotRefundable       = errors.New("only successful transactions can be refunded")
	ErrDuplicateInvoice    = errors.New("invoice number already exists")
)

// PaymentMethod is how a transaction was paid.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentQRIS   PaymentMethod = "qris"
	PaymentBank   PaymentMethod = "bank"
	PaymentCredit PaymentMethod = "credit"
)

// Valid reports whether the method is one of the supported kinds.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentQRIS, PaymentBank, PaymentCredit:
		return true
	}
	return false
}

// TxStatus is the state of a settled transaction. The only allowed
// transition is success → refund, one-way, admin-only.
type TxStatus string

const (
	TxSuccess   TxStatus = "success"
	TxRefund    TxStatus = "refund"
	TxCancelled TxStatus = "cancelled"
)

// Transaction is an immutable record of a settled sale. Amounts are whole
// Rupiah. The invariant total = subtotal − discount + tax holds always;
// change = paid − total for cash, 0 otherwise.
type Transaction struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CashierID     uuid.UUID          `json:"cashier_id"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	ShiftID       uuid.UUID          `json:"shift_id"`
	Subtotal      int64              `json:"subtotal"`
	Discount      int64              `json:"discount"`
	Tax           int64              `json:"tax"`
	Total         int64              `json:"total"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	Paid          int64              `json:"paid"`
	Change        int64              `json:"change"`
	Status        TxStatus           `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	Items         []*TransactionItem `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// TransactionItem is a line of a settled sale. Name and unit price are
// snapshots so the historical receipt stays accurate if the product is later
// edited or deleted (ProductID goes nil on delete).
type TransactionItem struct {
	ID            uuid.UUID  `json:"id"`
	TransactionID uuid.UUID  `json:"transaction_id"`
	ProductID     *uuid.UUID `json:"product_id,omitempty"`
	ProductName   string     `json:"product_name"`
	Qty           int        `json:"qty"`
	UnitPrice     int64      `json:"unit_price"`
	Discount      int64      `json:"discount"`
	Subtotal      int64      `json:"subtotal"`
}

// SettleItem is one priced cart line handed to settlement.
type SettleItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Qty         int    `json:"qty"`
	UnitPrice   int64  `json:"unit_price"`
	Discount    int64  `json:"discount"`
	Subtotal    int64  `json:"subtotal"`
}

// SettleRequest carries a finalized cart plus payment info. Pricing comes
// from the cart engine; settlement trusts the figures but re-validates the
// total identity before committing.
type SettleRequest struct {
	CashierID     string       `json:"cashier_id"`
	CustomerID    string       `json:"customer_id,omitempty"`
	ShiftID       string       `json:"shift_id"`
	Items         []SettleItem `json:"items"`
	Subtotal      int64        `json:"subtotal"`
	Discount      int64        `json:"discount"`
	Tax           int64        `json:"tax"`
	Total         int64        `json:"total"`
	PaymentMethod string       `json:"payment_method"`
	Paid          int64        `json:"paid"`
	Notes         string       `json:"notes,omitempty"`
}

// RefundPolicy makes refund side effects explicit. The default (all off)
// only flips the transaction status; reversal of stock and the cash-book
// entry is a business decision, not an assumption.
type RefundPolicy struct {
	RestockItems     bool
	ReverseCashEntry bool
}
