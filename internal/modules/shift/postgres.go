package shift

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the shift. The partial unique index on open shifts per
// cashier makes a concurrent double-open lose here rather than at the
// client-side check.
func (r *postgresRepo) Create(ctx context.Context, s *Shift) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shifts
		  (id, cashier_id, opened_at, starting_cash, total_sales, total_transactions)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.CashierID, s.OpenedAt, s.StartingCash, s.TotalSales, s.TotalTransactions)
	if err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return ErrShiftAlreadyOpen
		}
		return err
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Shift, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	s, err := r.scan(r.db.QueryRowContext(ctx, `
		SELECT id,cashier_id,opened_at,closed_at,starting_cash,ending_cash,
		       expected_cash,difference,total_sales,total_transactions
		FROM shifts WHERE id=$1`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrShiftNotFound
	}
	return s, err
}

func (r *postgresRepo) GetActiveByCashier(ctx context.Context, cashierID string) (*Shift, error) {
	uid, err := uuid.Parse(cashierID)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	s, err := r.scan(r.db.QueryRowContext(ctx, `
		SELECT id,cashier_id,opened_at,closed_at,starting_cash,ending_cash,
		       expected_cash,difference,total_sales,total_transactions
		FROM shifts WHERE cashier_id=$1 AND closed_at IS NULL`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrShiftNotFound
	}
	return s, err
}

// Close sets closed_at and ending cash with a conditional update, then
// stores the reconciliation, all in one transaction. Of two concurrent
// closes, the second sees no row matching closed_at IS NULL and gets
// ErrShiftNotOpen.
func (r *postgresRepo) Close(ctx context.Context, id string, endingCash int64, closedAt time.Time) (*Shift, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrShiftNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var startingCash, totalSales int64
	err = tx.QueryRowContext(ctx, `
		UPDATE shifts SET closed_at=$2, ending_cash=$3
		WHERE id=$1 AND closed_at IS NULL
		RETURNING starting_cash, total_sales`,
		uid, closedAt, endingCash).Scan(&startingCash, &totalSales)
	if err == sql.ErrNoRows {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, ErrShiftNotFound
		}
		return nil, ErrShiftNotOpen
	}
	if err != nil {
		return nil, err
	}

	expected, difference := Reconcile(startingCash, totalSales, endingCash)
	_, err = tx.ExecContext(ctx, `
		UPDATE shifts SET expected_cash=$1, difference=$2 WHERE id=$3`,
		expected, difference, uid)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) ListByCashier(ctx context.Context, cashierID string) ([]*Shift, error) {
	uid, err := uuid.Parse(cashierID)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,cashier_id,opened_at,closed_at,starting_cash,ending_cash,
		       expected_cash,difference,total_sales,total_transactions
		FROM shifts WHERE cashier_id=$1 ORDER BY opened_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var shifts []*Shift
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Shift, error) {
	s := &Shift{}
	var closedAt sql.NullTime
	var endingCash, expectedCash, difference sql.NullInt64
	err := row.Scan(&s.ID, &s.CashierID, &s.OpenedAt, &closedAt,
		&s.StartingCash, &endingCash, &expectedCash, &difference,
		&s.TotalSales, &s.TotalTransactions)
	if err != nil {
		return nil, err
	}
	if closedAt.Valid {
		s.ClosedAt = &closedAt.Time
	}
	if endingCash.Valid {
		s.EndingCash = &endingCash.Int64
	}
	if expectedCash.Valid {
		s.ExpectedCash = &expectedCash.Int64
	}
	if difference.Valid {
		s.Difference = &difference.Int64
	}
	return s, nil
}
