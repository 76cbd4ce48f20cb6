package supplier

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Supplier) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, name, contact, phone, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.Name, s.Contact, s.Phone, s.Address, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Supplier, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	s, err := r.scan(r.db.QueryRowContext(ctx, selectSupplier+` WHERE id=$1`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrSupplierNotFound
	}
	return s, err
}

func (r *postgresRepo) List(ctx context.Context) ([]*Supplier, error) {
	rows, err := r.db.QueryContext(ctx, selectSupplier+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var suppliers []*Supplier
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, s *Supplier) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE suppliers SET name=$2, contact=$3, phone=$4, address=$5, updated_at=$6
		WHERE id=$1`,
		s.ID, s.Name, s.Contact, s.Phone, s.Address, s.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrSupplierNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

// RecordPurchase mirrors the settlement shape on the inbound side: purchase
// row, item rows, stock bumps, cash-book outflow, all in one transaction.
func (r *postgresRepo) RecordPurchase(ctx context.Context, p *Purchase) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbtx.Rollback()

	_, err = dbtx.ExecContext(ctx, `
		INSERT INTO purchases (id, supplier_id, total, notes, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.SupplierID, p.Total, p.Notes, p.CreatedBy, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	for _, item := range p.Items {
		_, err = dbtx.ExecContext(ctx, `
			INSERT INTO purchase_items (id, purchase_id, product_id, qty, cost_price, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, p.ID, item.ProductID, item.Qty, item.CostPrice, item.Subtotal)
		if err != nil {
			return fmt.Errorf("insert purchase_item: %w", err)
		}
		_, err = dbtx.ExecContext(ctx, `
			UPDATE products SET stock = stock + $1, buy_price = $2, updated_at = NOW()
			WHERE id=$3`,
			item.Qty, item.CostPrice, item.ProductID)
		if err != nil {
			return fmt.Errorf("restock product: %w", err)
		}
	}

	_, err = dbtx.ExecContext(ctx, `
		INSERT INTO cash_book_entries (id, entry_type, source, amount, description, reference_id, created_by)
		VALUES ($1,'out','purchase',$2,$3,$4,$5)`,
		uuid.New(), p.Total, "purchase from supplier", p.ID, p.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert cash book entry: %w", err)
	}

	return dbtx.Commit()
}

func (r *postgresRepo) GetPurchase(ctx context.Context, id string) (*Purchase, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}
	p := &Purchase{}
	err = r.db.QueryRowContext(ctx, selectPurchase+` WHERE id=$1`, uid).Scan(
		&p.ID, &p.SupplierID, &p.Total, &p.Notes, &p.CreatedBy, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Items, err = r.listPurchaseItems(ctx, p.ID)
	return p, err
}

func (r *postgresRepo) ListPurchases(ctx context.Context, supplierID string) ([]*Purchase, error) {
	uid, err := uuid.Parse(supplierID)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	rows, err := r.db.QueryContext(ctx,
		selectPurchase+` WHERE supplier_id=$1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var purchases []*Purchase
	for rows.Next() {
		p := &Purchase{}
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.Total, &p.Notes, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// ── helpers ───────────────────────────────────────────────────────────────────

const selectSupplier = `
	SELECT id, name, contact, phone, address, created_at, updated_at
	FROM suppliers`

const selectPurchase = `
	SELECT id, supplier_id, total, notes, created_by, created_at
	FROM purchases`

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Supplier, error) {
	s := &Supplier{}
	err := row.Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) listPurchaseItems(ctx context.Context, purchaseID uuid.UUID) ([]*PurchaseItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, purchase_id, product_id, qty, cost_price, subtotal
		FROM purchase_items WHERE purchase_id=$1`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PurchaseItem
	for rows.Next() {
		item := &PurchaseItem{}
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.ProductID,
			&item.Qty, &item.CostPrice, &item.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
