package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, name, category, buy_price, sell_price, unit, stock, min_stock)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Category, p.BuyPrice, p.SellPrice, p.Unit, p.Stock, p.MinStock)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	p, err := r.scan(r.db.QueryRowContext(ctx, `
		SELECT id,name,category,buy_price,sell_price,unit,stock,min_stock,created_at,updated_at
		FROM products WHERE id=$1`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (r *postgresRepo) List(ctx context.Context, search, category string) ([]*Product, error) {
	query := `SELECT id,name,category,buy_price,sell_price,unit,stock,min_stock,created_at,updated_at
	          FROM products WHERE 1=1`
	args := []interface{}{}
	n := 1
	if search != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, n)
		args = append(args, "%"+search+"%")
		n++
	}
	if category != "" {
		query += fmt.Sprintf(` AND category=$%d`, n)
		args = append(args, category)
		n++
	}
	query += ` ORDER BY name ASC`
	return r.query(ctx, query, args...)
}

func (r *postgresRepo) ListLowStock(ctx context.Context) ([]*Product, error) {
	return r.query(ctx, `
		SELECT id,name,category,buy_price,sell_price,unit,stock,min_stock,created_at,updated_at
		FROM products WHERE stock <= min_stock ORDER BY stock ASC`)
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, category=$2, buy_price=$3, sell_price=$4, unit=$5, min_stock=$6, updated_at=$7
		WHERE id=$8`,
		p.Name, p.Category, p.BuyPrice, p.SellPrice, p.Unit, p.MinStock, time.Now(), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrProductNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock is a conditional update so two concurrent adjustments cannot
// drive stock negative.
func (r *postgresRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return 0, ErrProductNotFound
	}
	var stock int
	err = r.db.QueryRowContext(ctx, `
		UPDATE products SET stock = stock + $1, updated_at = NOW()
		WHERE id=$2 AND stock + $1 >= 0
		RETURNING stock`, delta, uid).Scan(&stock)
	if err == sql.ErrNoRows {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return 0, ErrProductNotFound
		}
		return 0, ErrInsufficientStock
	}
	return stock, err
}

// ── helpers ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.BuyPrice, &p.SellPrice,
		&p.Unit, &p.Stock, &p.MinStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}
