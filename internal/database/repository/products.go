package repository

import (
	"context"
	"database/sql"
)

// ProductRepo handles the product catalog.
type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Upsert(ctx context.Context, p Product) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO products(id, name, activity_type)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 activity_type=excluded.activity_type;
	`, p.ID, p.Name, p.ActivityType)
	return err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *ProductRepo) Get(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, activity_type FROM products WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.ActivityType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, activity_type FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ActivityType); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
