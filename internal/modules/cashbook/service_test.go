package cashbook

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct{ entries []*Entry }

func (f *fakeRepo) Create(ctx context.Context, e *Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Entry, error) {
	for _, e := range f.entries {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return nil, ErrEntryNotFound
}

func (f *fakeRepo) ListRange(ctx context.Context, from, to time.Time) ([]*Entry, error) {
	return f.entries, nil
}

func (f *fakeRepo) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	s := &Summary{}
	for _, e := range f.entries {
		if e.Type == EntryIn {
			s.TotalIn += e.Amount
		} else {
			s.TotalOut += e.Amount
		}
	}
	s.Balance = s.TotalIn - s.TotalOut
	return s, nil
}

func TestCreateManualEntry(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	e, err := svc.CreateManualEntry(context.Background(), CreateEntryRequest{
		Type:        "out",
		Amount:      50000,
		Description: "petty cash for cleaning supplies",
		CreatedBy:   uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Equal(t, EntryOut, e.Type)
	assert.Equal(t, SourceManual, e.Source)
	require.Len(t, repo.entries, 1)
}

func TestCreateManualEntryValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	creator := uuid.NewString()

	cases := []struct {
		name string
		req  CreateEntryRequest
	}{
		{"bad type", CreateEntryRequest{Type: "sideways", Amount: 100, Description: "x", CreatedBy: creator}},
		{"zero amount", CreateEntryRequest{Type: "in", Amount: 0, Description: "x", CreatedBy: creator}},
		{"negative amount", CreateEntryRequest{Type: "in", Amount: -5, Description: "x", CreatedBy: creator}},
		{"missing description", CreateEntryRequest{Type: "in", Amount: 100, CreatedBy: creator}},
		{"bad creator", CreateEntryRequest{Type: "in", Amount: 100, Description: "x", CreatedBy: "nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateManualEntry(context.Background(), tc.req)
			assert.Error(t, err)
		})
	}
}

func TestSummarize(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	creator := uuid.NewString()

	_, err := svc.CreateManualEntry(context.Background(), CreateEntryRequest{
		Type: "in", Amount: 100000, Description: "float top-up", CreatedBy: creator})
	require.NoError(t, err)
	_, err = svc.CreateManualEntry(context.Background(), CreateEntryRequest{
		Type: "out", Amount: 30000, Description: "withdrawal", CreatedBy: creator})
	require.NoError(t, err)

	s, err := svc.Summarize(context.Background(), time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(100000), s.TotalIn)
	assert.Equal(t, int64(30000), s.TotalOut)
	assert.Equal(t, int64(70000), s.Balance)
}
