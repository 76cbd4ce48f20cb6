package sales

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	settled   []*Transaction
	refunded  map[string]RefundPolicy
	settleErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{refunded: make(map[string]RefundPolicy)}
}

func (f *fakeRepo) Settle(ctx context.Context, t *Transaction) error {
	if f.settleErr != nil {
		return f.settleErr
	}
	f.settled = append(f.settled, t)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Transaction, error) {
	for _, t := range f.settled {
		if t.ID.String() == id {
			return t, nil
		}
	}
	return nil, ErrTransactionNotFound
}

func (f *fakeRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Transaction, error) {
	for _, t := range f.settled {
		if t.InvoiceNumber == invoiceNumber {
			return t, nil
		}
	}
	return nil, ErrTransactionNotFound
}

func (f *fakeRepo) ListByShift(ctx context.Context, shiftID string) ([]*Transaction, error) {
	var out []*Transaction
	for _, t := range f.settled {
		if t.ShiftID.String() == shiftID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRange(ctx context.Context, from, to time.Time) ([]*Transaction, error) {
	return f.settled, nil
}

func (f *fakeRepo) Refund(ctx context.Context, id string, policy RefundPolicy) (*Transaction, error) {
	t, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != TxSuccess {
		return nil, ErrNotRefundable
	}
	t.Status = TxRefund
	f.refunded[id] = policy
	return t, nil
}

func validRequest() SettleRequest {
	return SettleRequest{
		CashierID: uuid.NewString(),
		ShiftID:   uuid.NewString(),
		Items: []SettleItem{
			{ProductID: uuid.NewString(), ProductName: "Indomie Goreng", Qty: 2, UnitPrice: 10000, Subtotal: 20000},
			{ProductID: uuid.NewString(), ProductName: "Teh Botol", Qty: 1, UnitPrice: 15000, Subtotal: 15000},
		},
		Subtotal:      35000,
		Discount:      0,
		Tax:           0,
		Total:         35000,
		PaymentMethod: "cash",
		Paid:          50000,
	}
}

func TestSettleCashComputesChange(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, RefundPolicy{})

	tx, err := svc.Settle(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(50000), tx.Paid)
	assert.Equal(t, int64(15000), tx.Change)
	assert.Equal(t, TxSuccess, tx.Status)
	require.Len(t, repo.settled, 1)
	require.Len(t, tx.Items, 2)
	assert.Equal(t, "Indomie Goreng", tx.Items[0].ProductName)
}

func TestSettleRejectsInsufficientCash(t *testing.T) {
	svc := NewService(newFakeRepo(), RefundPolicy{})
	req := validRequest()
	req.Paid = 30000

	_, err := svc.Settle(context.Background(), req)
	assert.ErrorIs(t, err, ErrInsufficientPayment)
}

func TestSettleNonCashPinsPaidToTotal(t *testing.T) {
	svc := NewService(newFakeRepo(), RefundPolicy{})
	req := validRequest()
	req.PaymentMethod = "qris"
	req.Paid = 0

	tx, err := svc.Settle(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(35000), tx.Paid)
	assert.Equal(t, int64(0), tx.Change)
}

func TestSettleRejectsTotalMismatch(t *testing.T) {
	svc := NewService(newFakeRepo(), RefundPolicy{})
	req := validRequest()
	req.Total = 34000

	_, err := svc.Settle(context.Background(), req)
	assert.ErrorIs(t, err, ErrTotalMismatch)
}

func TestSettleRejectsInvalidPaymentMethod(t *testing.T) {
	svc := NewService(newFakeRepo(), RefundPolicy{})
	req := validRequest()
	req.PaymentMethod = "cheque"

	_, err := svc.Settle(context.Background(), req)
	assert.Error(t, err)
}

func TestSettleRejectsEmptyItems(t *testing.T) {
	svc := NewService(newFakeRepo(), RefundPolicy{})
	req := validRequest()
	req.Items = nil

	_, err := svc.Settle(context.Background(), req)
	assert.Error(t, err)
}

func TestSettleRejectionLeavesNothingPersisted(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, RefundPolicy{})
	req := validRequest()
	req.Total = 1

	_, err := svc.Settle(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, repo.settled)
}

func TestInvoiceNumberFormat(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, RefundPolicy{})

	tx, err := svc.Settle(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^INV-\d{8}-[0-9A-F]{4}$`), tx.InvoiceNumber)
}

func TestRefundPassesConfiguredPolicy(t *testing.T) {
	repo := newFakeRepo()
	policy := RefundPolicy{RestockItems: true, ReverseCashEntry: true}
	svc := NewService(repo, policy)

	tx, err := svc.Settle(context.Background(), validRequest())
	require.NoError(t, err)

	refunded, err := svc.Refund(context.Background(), tx.ID.String())
	require.NoError(t, err)
	assert.Equal(t, TxRefund, refunded.Status)
	assert.Equal(t, policy, repo.refunded[tx.ID.String()])
}

func TestRefundTwiceFails(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, RefundPolicy{})

	tx, err := svc.Settle(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.Refund(context.Background(), tx.ID.String())
	require.NoError(t, err)

	_, err = svc.Refund(context.Background(), tx.ID.String())
	assert.ErrorIs(t, err, ErrNotRefundable)
}
