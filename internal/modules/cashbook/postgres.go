package cashbook

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cash_book_entries (id, entry_type, source, amount, description, reference_id, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.Type, e.Source, e.Amount, e.Description, e.ReferenceID, e.CreatedBy, e.CreatedAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Entry, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrEntryNotFound
	}
	e, err := r.scan(r.db.QueryRowContext(ctx, selectEntry+` WHERE id=$1`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	return e, err
}

func (r *postgresRepo) ListRange(ctx context.Context, from, to time.Time) ([]*Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		selectEntry+` WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*Entry
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *postgresRepo) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	s := &Summary{}
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE entry_type='in'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE entry_type='out'), 0)
		FROM cash_book_entries
		WHERE created_at >= $1 AND created_at < $2`,
		from, to).Scan(&s.TotalIn, &s.TotalOut)
	if err != nil {
		return nil, err
	}
	s.Balance = s.TotalIn - s.TotalOut
	return s, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

const selectEntry = `
	SELECT id, entry_type, source, amount, description, reference_id, created_by, created_at
	FROM cash_book_entries`

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Entry, error) {
	e := &Entry{}
	var referenceID, createdBy sql.NullString
	err := row.Scan(&e.ID, &e.Type, &e.Source, &e.Amount, &e.Description,
		&referenceID, &createdBy, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if referenceID.Valid {
		uid, _ := uuid.Parse(referenceID.String)
		e.ReferenceID = &uid
	}
	if createdBy.Valid {
		uid, _ := uuid.Parse(createdBy.String)
		e.CreatedBy = &uid
	}
	return e, nil
}
