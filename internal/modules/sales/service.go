package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines the settlement business logic.
type Service interface {
	// Settle validates the request, generates the invoice number, and
	// persists the transaction atomically. All validation happens before
	// any write: a rejected settlement leaves no trace.
	Settle(ctx context.Context, req SettleRequest) (*Transaction, error)

	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	GetByInvoice(ctx context.Context, invoiceNumber string) (*Transaction, error)
	ListByShift(ctx context.Context, shiftID string) ([]*Transaction, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*Transaction, error)

	// Refund marks a successful transaction refunded and applies the
	// configured reversals. Admin-only; the handler enforces that.
	Refund(ctx context.Context, id string) (*Transaction, error)
}

type service struct {
	repo         Repository
	refundPolicy RefundPolicy
}

func NewService(repo Repository, refundPolicy RefundPolicy) Service {
	return &service{repo: repo, refundPolicy: refundPolicy}
}

func (s *service) Settle(ctx context.Context, req SettleRequest) (*Transaction, error) {
	cashierID, err := uuid.Parse(req.CashierID)
	if err != nil {
		return nil, fmt.Errorf("invalid cashier_id: %w", err)
	}
	shiftID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("invalid shift_id: %w", err)
	}
	var customerID *uuid.UUID
	if req.CustomerID != "" {
		uid, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer_id: %w", err)
		}
		customerID = &uid
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("transaction must have at least one item")
	}
	method := PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("invalid payment_method: %s", req.PaymentMethod)
	}
	if req.Total != req.Subtotal-req.Discount+req.Tax {
		return nil, ErrTotalMismatch
	}

	// Cash takes whatever was tendered and returns the difference. Other
	// methods are exact-amount by nature: paid is pinned to the total.
	paid, change := req.Paid, int64(0)
	if method == PaymentCash {
		if paid < req.Total {
			return nil, ErrInsufficientPayment
		}
		change = paid - req.Total
	} else {
		paid = req.Total
	}

	t := &Transaction{
		ID:            uuid.New(),
		InvoiceNumber: generateInvoiceNumber(),
		CashierID:     cashierID,
		CustomerID:    customerID,
		ShiftID:       shiftID,
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Tax:           req.Tax,
		Total:         req.Total,
		PaymentMethod: method,
		Paid:          paid,
		Change:        change,
		Status:        TxSuccess,
		Notes:         req.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	for _, item := range req.Items {
		var productID *uuid.UUID
		if item.ProductID != "" {
			uid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("invalid product_id for %s: %w", item.ProductName, err)
			}
			productID = &uid
		}
		if item.Qty < 1 {
			return nil, fmt.Errorf("qty must be at least 1 for %s", item.ProductName)
		}
		t.Items = append(t.Items, &TransactionItem{
			ID:            uuid.New(),
			TransactionID: t.ID,
			ProductID:     productID,
			ProductName:   item.ProductName,
			Qty:           item.Qty,
			UnitPrice:     item.UnitPrice,
			Discount:      item.Discount,
			Subtotal:      item.Subtotal,
		})
	}

	if err := s.repo.Settle(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByInvoice(ctx context.Context, invoiceNumber string) (*Transaction, error) {
	return s.repo.GetByInvoiceNumber(ctx, invoiceNumber)
}

func (s *service) ListByShift(ctx context.Context, shiftID string) ([]*Transaction, error) {
	return s.repo.ListByShift(ctx, shiftID)
}

func (s *service) ListRange(ctx context.Context, from, to time.Time) ([]*Transaction, error) {
	return s.repo.ListRange(ctx, from, to)
}

func (s *service) Refund(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.Refund(ctx, id, s.refundPolicy)
}

func generateInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return fmt.Sprintf("INV-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
