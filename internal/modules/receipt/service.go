package receipt

import (
	"context"

	"github.com/adiwijaya/warungpos-backend/internal/modules/sales"
)

// TransactionSource is the slice of the sales service receipts need.
type TransactionSource interface {
	GetTransaction(ctx context.Context, id string) (*sales.Transaction, error)
}

// CashierDirectory resolves a cashier id to a display name.
type CashierDirectory interface {
	CashierName(ctx context.Context, id string) (string, error)
}

// Service builds receipts for settled transactions.
type Service interface {
	BuildReceipt(ctx context.Context, transactionID string) (*Receipt, error)
}

type service struct {
	transactions TransactionSource
	cashiers     CashierDirectory
	store        StoreInfo
}

func NewService(transactions TransactionSource, cashiers CashierDirectory, store StoreInfo) Service {
	return &service{transactions: transactions, cashiers: cashiers, store: store}
}

func (s *service) BuildReceipt(ctx context.Context, transactionID string) (*Receipt, error) {
	t, err := s.transactions.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	// A deleted cashier account must not break reprinting old receipts.
	cashierName, err := s.cashiers.CashierName(ctx, t.CashierID.String())
	if err != nil {
		cashierName = "-"
	}

	rc := &Receipt{
		StoreName:     s.store.Name,
		StoreAddress:  s.store.Address,
		StorePhone:    s.store.Phone,
		InvoiceNumber: t.InvoiceNumber,
		CashierName:   cashierName,
		IssuedAt:      t.CreatedAt,
		Subtotal:      t.Subtotal,
		Discount:      t.Discount,
		Tax:           t.Tax,
		Total:         t.Total,
		PaymentMethod: string(t.PaymentMethod),
		Paid:          t.Paid,
		Change:        t.Change,
		Notes:         t.Notes,
	}
	for _, item := range t.Items {
		rc.Lines = append(rc.Lines, ReceiptLine{
			ProductName: item.ProductName,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Subtotal:    item.Subtotal,
		})
	}
	return rc, nil
}
