package sales

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Settle runs the whole settlement sequence inside a single DB transaction:
//
//  1. lock the shift row and re-validate it is open (a close racing this
//     settlement either waits for the lock or has already won, in which case
//     the settlement fails),
//  2. conditionally decrement stock per line (decrement-if-sufficient, never
//     read-modify-write),
//  3. insert the transaction and its item snapshots,
//  4. insert the cash-book entry,
//  5. bump the shift running totals, re-guarded by closed_at IS NULL.
//
// Any error rolls everything back.
func (r *postgresRepo) Settle(ctx context.Context, t *Transaction) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbtx.Rollback()

	var closedAt sql.NullTime
	err = dbtx.QueryRowContext(ctx,
		`SELECT closed_at FROM shifts WHERE id=$1 FOR UPDATE`, t.ShiftID).Scan(&closedAt)
	if err == sql.ErrNoRows {
		return ErrShiftNotOpen
	}
	if err != nil {
		return err
	}
	if closedAt.Valid {
		return ErrShiftNotOpen
	}

	for _, item := range t.Items {
		if item.ProductID == nil {
			continue
		}
		res, err := dbtx.ExecContext(ctx, `
			UPDATE products SET stock = stock - $1, updated_at = NOW()
			WHERE id=$2 AND stock >= $1`,
			item.Qty, *item.ProductID)
		if err != nil {
			return fmt.Errorf("decrement stock for %s: %w", item.ProductName, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, item.ProductName)
		}
	}

	_, err = dbtx.ExecContext(ctx, `
		INSERT INTO transactions
		  (id, invoice_number, cashier_id, customer_id, shift_id,
		   subtotal, discount, tax, total, payment_method, paid, change, status, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		t.ID, t.InvoiceNumber, t.CashierID, t.CustomerID, t.ShiftID,
		t.Subtotal, t.Discount, t.Tax, t.Total, t.PaymentMethod,
		t.Paid, t.Change, t.Status, t.Notes, t.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return ErrDuplicateInvoice
		}
		return fmt.Errorf("insert transaction: %w", err)
	}

	for i, item := range t.Items {
		_, err = dbtx.ExecContext(ctx, `
			INSERT INTO transaction_items
			  (id, transaction_id, line_no, product_id, product_name, qty, unit_price, discount, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			item.ID, t.ID, i+1, item.ProductID, item.ProductName,
			item.Qty, item.UnitPrice, item.Discount, item.Subtotal)
		if err != nil {
			return fmt.Errorf("insert transaction_item: %w", err)
		}
	}

	_, err = dbtx.ExecContext(ctx, `
		INSERT INTO cash_book_entries (id, entry_type, source, amount, description, reference_id, created_by)
		VALUES ($1,'in','transaction',$2,$3,$4,$5)`,
		uuid.New(), t.Total, "sale "+t.InvoiceNumber, t.ID, t.CashierID)
	if err != nil {
		return fmt.Errorf("insert cash book entry: %w", err)
	}

	res, err := dbtx.ExecContext(ctx, `
		UPDATE shifts
		SET total_sales = total_sales + $1, total_transactions = total_transactions + 1
		WHERE id=$2 AND closed_at IS NULL`,
		t.Total, t.ShiftID)
	if err != nil {
		return fmt.Errorf("update shift totals: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShiftNotOpen
	}

	return dbtx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Transaction, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	t, err := r.scan(r.db.QueryRowContext(ctx, selectTransaction+` WHERE id=$1`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Items, err = r.listItems(ctx, t.ID)
	return t, err
}

func (r *postgresRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Transaction, error) {
	t, err := r.scan(r.db.QueryRowContext(ctx, selectTransaction+` WHERE invoice_number=$1`, invoiceNumber))
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Items, err = r.listItems(ctx, t.ID)
	return t, err
}

func (r *postgresRepo) ListByShift(ctx context.Context, shiftID string) ([]*Transaction, error) {
	uid, err := uuid.Parse(shiftID)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	return r.queryList(ctx, selectTransaction+` WHERE shift_id=$1 ORDER BY created_at DESC`, uid)
}

func (r *postgresRepo) ListRange(ctx context.Context, from, to time.Time) ([]*Transaction, error) {
	return r.queryList(ctx,
		selectTransaction+` WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC`,
		from, to)
}

// Refund flips the status with a conditional update so the transition stays
// one-way, then applies the configured reversals in the same transaction.
func (r *postgresRepo) Refund(ctx context.Context, id string, policy RefundPolicy) (*Transaction, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}

	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer dbtx.Rollback()

	var total int64
	var invoiceNumber string
	err = dbtx.QueryRowContext(ctx, `
		UPDATE transactions SET status='refund'
		WHERE id=$1 AND status='success'
		RETURNING total, invoice_number`, uid).Scan(&total, &invoiceNumber)
	if err == sql.ErrNoRows {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, ErrTransactionNotFound
		}
		return nil, ErrNotRefundable
	}
	if err != nil {
		return nil, err
	}

	if policy.RestockItems {
		_, err = dbtx.ExecContext(ctx, `
			UPDATE products p SET stock = p.stock + ti.qty, updated_at = NOW()
			FROM transaction_items ti
			WHERE ti.transaction_id = $1 AND ti.product_id = p.id`, uid)
		if err != nil {
			return nil, fmt.Errorf("restock refunded items: %w", err)
		}
	}

	if policy.ReverseCashEntry {
		_, err = dbtx.ExecContext(ctx, `
			INSERT INTO cash_book_entries (id, entry_type, source, amount, description, reference_id)
			VALUES ($1,'out','transaction',$2,$3,$4)`,
			uuid.New(), total, "refund "+invoiceNumber, uid)
		if err != nil {
			return nil, fmt.Errorf("insert refund cash book entry: %w", err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ── helpers ───────────────────────────────────────────────────────────────────

const selectTransaction = `
	SELECT id,invoice_number,cashier_id,customer_id,shift_id,
	       subtotal,discount,tax,total,payment_method,paid,change,status,notes,created_at
	FROM transactions`

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Transaction, error) {
	t := &Transaction{}
	var customerID sql.NullString
	err := row.Scan(&t.ID, &t.InvoiceNumber, &t.CashierID, &customerID, &t.ShiftID,
		&t.Subtotal, &t.Discount, &t.Tax, &t.Total, &t.PaymentMethod,
		&t.Paid, &t.Change, &t.Status, &t.Notes, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		uid, _ := uuid.Parse(customerID.String)
		t.CustomerID = &uid
	}
	return t, nil
}

func (r *postgresRepo) queryList(ctx context.Context, query string, args ...interface{}) ([]*Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var txs []*Transaction
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func (r *postgresRepo) listItems(ctx context.Context, transactionID uuid.UUID) ([]*TransactionItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, transaction_id, product_id, product_name, qty, unit_price, discount, subtotal
		FROM transaction_items WHERE transaction_id=$1 ORDER BY line_no`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TransactionItem
	for rows.Next() {
		item := &TransactionItem{}
		var productID sql.NullString
		if err := rows.Scan(&item.ID, &item.TransactionID, &productID, &item.ProductName,
			&item.Qty, &item.UnitPrice, &item.Discount, &item.Subtotal); err != nil {
			return nil, err
		}
		if productID.Valid {
			uid, _ := uuid.Parse(productID.String)
			item.ProductID = &uid
		}
		items = append(items, item)
	}
	return items, nil
}
