package report

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListSettled(ctx context.Context, from, to time.Time) ([]SettledSale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT total, payment_method, created_at
		FROM transactions
		WHERE status='success' AND created_at >= $1 AND created_at < $2
		ORDER BY created_at`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []SettledSale
	for rows.Next() {
		var s SettledSale
		if err := rows.Scan(&s.Total, &s.PaymentMethod, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *postgresRepo) ListSoldItems(ctx context.Context, from, to time.Time) ([]SoldItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ti.product_name, ti.qty, ti.subtotal
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		WHERE t.status='success' AND t.created_at >= $1 AND t.created_at < $2`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SoldItem
	for rows.Next() {
		var item SoldItem
		if err := rows.Scan(&item.ProductName, &item.Qty, &item.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
