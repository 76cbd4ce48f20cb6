package receipt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiwijaya/warungpos-backend/internal/modules/sales"
)

type fakeTransactions struct{ tx *sales.Transaction }

func (f *fakeTransactions) GetTransaction(ctx context.Context, id string) (*sales.Transaction, error) {
	if f.tx == nil || f.tx.ID.String() != id {
		return nil, sales.ErrTransactionNotFound
	}
	return f.tx, nil
}

type fakeCashiers struct {
	name string
	err  error
}

func (f *fakeCashiers) CashierName(ctx context.Context, id string) (string, error) {
	return f.name, f.err
}

func sampleTransaction() *sales.Transaction {
	return &sales.Transaction{
		ID:            uuid.New(),
		InvoiceNumber: "INV-20260301-AB12",
		CashierID:     uuid.New(),
		Subtotal:      35000,
		Total:         35000,
		PaymentMethod: sales.PaymentCash,
		Paid:          50000,
		Change:        15000,
		Status:        sales.TxSuccess,
		CreatedAt:     time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Items: []*sales.TransactionItem{
			{ProductName: "Indomie Goreng", Qty: 2, UnitPrice: 10000, Subtotal: 20000},
			{ProductName: "Teh Botol", Qty: 1, UnitPrice: 15000, Subtotal: 15000},
		},
	}
}

func TestBuildReceipt(t *testing.T) {
	tx := sampleTransaction()
	store := StoreInfo{Name: "Warung Sejahtera", Address: "Jl. Melati 12", Phone: "0812-0000-0000"}
	svc := NewService(&fakeTransactions{tx: tx}, &fakeCashiers{name: "Adi"}, store)

	rc, err := svc.BuildReceipt(context.Background(), tx.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Warung Sejahtera", rc.StoreName)
	assert.Equal(t, "INV-20260301-AB12", rc.InvoiceNumber)
	assert.Equal(t, "Adi", rc.CashierName)
	assert.Equal(t, tx.CreatedAt, rc.IssuedAt)
	require.Len(t, rc.Lines, 2)
	assert.Equal(t, "Indomie Goreng", rc.Lines[0].ProductName)
	assert.Equal(t, int64(15000), rc.Change)
}

func TestBuildReceiptSurvivesMissingCashier(t *testing.T) {
	tx := sampleTransaction()
	svc := NewService(&fakeTransactions{tx: tx},
		&fakeCashiers{err: errors.New("user not found")}, StoreInfo{Name: "Toko"})

	rc, err := svc.BuildReceipt(context.Background(), tx.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "-", rc.CashierName)
}

func TestBuildReceiptUnknownTransaction(t *testing.T) {
	svc := NewService(&fakeTransactions{}, &fakeCashiers{name: "Adi"}, StoreInfo{})

	_, err := svc.BuildReceipt(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, sales.ErrTransactionNotFound)
}
