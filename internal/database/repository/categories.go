package repository

import (
	"context"
	"database/sql"
)

// CategoryRepo handles the per-type subcategory label sets.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Add appends a label to the end of its type's ordered set. Duplicate names
// within a type are ignored.
func (r *CategoryRepo) Add(ctx context.Context, typ TransactionType, name string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT OR IGNORE INTO categories(type, name, sort_order)
	VALUES (?, ?, (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM categories WHERE type = ?))`,
		typ, name, typ)
	return err
}

// Rename changes a label in place, keeping its position. It does not touch
// transactions; the app path is database.RenameCategory, which cascades
// onto existing rows in the same sqlite transaction.
func (r *CategoryRepo) Rename(ctx context.Context, typ TransactionType, oldName, newName string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE type = ? AND name = ?`, newName, typ, oldName)
	return err
}

func (r *CategoryRepo) Remove(ctx context.Context, typ TransactionType, name string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE type = ? AND name = ?`, typ, name)
	return err
}

// List returns the labels of one type in their stable order.
func (r *CategoryRepo) List(ctx context.Context, typ TransactionType) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM categories WHERE type = ? ORDER BY sort_order, name`, typ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n)
	return n, err
}
