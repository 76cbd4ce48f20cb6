package customer

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, email, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	c, err := r.scan(r.db.QueryRowContext(ctx, selectCustomer+` WHERE id=$1`, uid))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	return c, err
}

func (r *postgresRepo) List(ctx context.Context, search string) ([]*Customer, error) {
	query := selectCustomer + ` ORDER BY name`
	args := []interface{}{}
	if search != "" {
		query = selectCustomer + ` WHERE name ILIKE $1 OR phone ILIKE $1 ORDER BY name`
		args = append(args, "%"+search+"%")
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var customers []*Customer
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name=$2, phone=$3, email=$4, address=$5, updated_at=$6
		WHERE id=$1`,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrCustomerNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

const selectCustomer = `
	SELECT id, name, phone, email, address, created_at, updated_at
	FROM customers`

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Customer, error) {
	c := &Customer{}
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
