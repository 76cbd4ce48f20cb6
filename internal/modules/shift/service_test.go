package shift

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo keeps shifts in memory and mirrors the repository contract:
// GetActiveByCashier returns ErrShiftNotFound when nothing is open, Close
// fails with ErrShiftNotOpen on a closed shift.
type fakeRepo struct {
	shifts map[string]*Shift
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{shifts: make(map[string]*Shift)}
}

func (f *fakeRepo) Create(ctx context.Context, s *Shift) error {
	for _, existing := range f.shifts {
		if existing.CashierID == s.CashierID && existing.IsOpen() {
			return ErrShiftAlreadyOpen
		}
	}
	f.shifts[s.ID.String()] = s
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return nil, ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetActiveByCashier(ctx context.Context, cashierID string) (*Shift, error) {
	for _, s := range f.shifts {
		if s.CashierID.String() == cashierID && s.IsOpen() {
			return s, nil
		}
	}
	return nil, ErrShiftNotFound
}

func (f *fakeRepo) Close(ctx context.Context, id string, endingCash int64, closedAt time.Time) (*Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return nil, ErrShiftNotFound
	}
	if !s.IsOpen() {
		return nil, ErrShiftNotOpen
	}
	expected, difference := Reconcile(s.StartingCash, s.TotalSales, endingCash)
	s.ClosedAt = &closedAt
	s.EndingCash = &endingCash
	s.ExpectedCash = &expected
	s.Difference = &difference
	return s, nil
}

func (f *fakeRepo) ListByCashier(ctx context.Context, cashierID string) ([]*Shift, error) {
	var out []*Shift
	for _, s := range f.shifts {
		if s.CashierID.String() == cashierID {
			out = append(out, s)
		}
	}
	return out, nil
}

const testCashier = "7f9c38f1-6a2e-4c3d-9b1a-2f4e8d0c5a61"

func TestOpenShift(t *testing.T) {
	svc := NewService(newFakeRepo())

	sh, err := svc.OpenShift(context.Background(), OpenShiftRequest{
		CashierID:    testCashier,
		StartingCash: 500000,
	})
	require.NoError(t, err)
	assert.True(t, sh.IsOpen())
	assert.Equal(t, int64(500000), sh.StartingCash)
	assert.Equal(t, int64(0), sh.TotalSales)
	assert.Equal(t, 0, sh.TotalTransactions)
}

func TestOpenShiftRejectsSecondOpen(t *testing.T) {
	svc := NewService(newFakeRepo())
	first, err := svc.OpenShift(context.Background(), OpenShiftRequest{CashierID: testCashier, StartingCash: 100000})
	require.NoError(t, err)

	_, err = svc.OpenShift(context.Background(), OpenShiftRequest{CashierID: testCashier, StartingCash: 200000})
	assert.ErrorIs(t, err, ErrShiftAlreadyOpen)

	// The original shift is untouched.
	got, err := svc.GetShift(context.Background(), first.ID.String())
	require.NoError(t, err)
	assert.True(t, got.IsOpen())
	assert.Equal(t, int64(100000), got.StartingCash)
}

func TestOpenShiftRejectsNegativeStartingCash(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.OpenShift(context.Background(), OpenShiftRequest{CashierID: testCashier, StartingCash: -1})
	assert.Error(t, err)
}

func TestCloseShiftReconciles(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	sh, err := svc.OpenShift(context.Background(), OpenShiftRequest{CashierID: testCashier, StartingCash: 500000})
	require.NoError(t, err)

	// One settled transaction of 85500 during the shift.
	repo.shifts[sh.ID.String()].TotalSales = 85500
	repo.shifts[sh.ID.String()].TotalTransactions = 1

	closed, err := svc.CloseShift(context.Background(), sh.ID.String(), CloseShiftRequest{EndingCash: 585500})
	require.NoError(t, err)
	require.NotNil(t, closed.ExpectedCash)
	require.NotNil(t, closed.Difference)
	assert.Equal(t, int64(585500), *closed.ExpectedCash)
	assert.Equal(t, int64(0), *closed.Difference)
	assert.False(t, closed.IsOpen())
}

func TestCloseShiftReportsShortfall(t *testing.T) {
	svc := NewService(newFakeRepo())
	sh, err := svc.OpenShift(context.Background(), OpenShiftRequest{CashierID: testCashier, StartingCash: 200000})
	require.NoError(t, err)

	closed, err := svc.CloseShift(context.Background(), sh.ID.String(), CloseShiftRequest{EndingCash: 195000})
	require.NoError(t, err)
	assert.Equal(t, int64(-5000), *closed.Difference)
}

func TestCloseShiftTwiceFails(t *testing.T) {
	svc := NewService(newFakeRepo())
	sh, err := svc.OpenShift(context.Background(), OpenShiftRequest{CashierID: testCashier, StartingCash: 0})
	require.NoError(t, err)

	_, err = svc.CloseShift(context.Background(), sh.ID.String(), CloseShiftRequest{EndingCash: 0})
	require.NoError(t, err)

	_, err = svc.CloseShift(context.Background(), sh.ID.String(), CloseShiftRequest{EndingCash: 0})
	assert.ErrorIs(t, err, ErrShiftNotOpen)
}

func TestGetActiveShiftReturnsNilWhenNoneOpen(t *testing.T) {
	svc := NewService(newFakeRepo())
	sh, err := svc.GetActiveShift(context.Background(), testCashier)
	require.NoError(t, err)
	assert.Nil(t, sh)
}

func TestReconcile(t *testing.T) {
	expected, difference := Reconcile(500000, 85500, 585500)
	assert.Equal(t, int64(585500), expected)
	assert.Equal(t, int64(0), difference)

	_, difference = Reconcile(500000, 85500, 600000)
	assert.Equal(t, int64(14500), difference)
}
