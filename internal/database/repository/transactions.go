package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// TransactionRepo handles the ledger table.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Insert(ctx context.Context, t Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(
	 id, description, amount, date, due_date, type, status, account,
	 subcategory, product_id, activity_type, method, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`,
		t.ID, t.Description, t.Amount, t.Date, t.DueDate, t.Type, t.Status,
		t.Account, t.Subcategory, t.ProductID, t.ActivityType, t.Method)
	return err
}

// Update replaces every mutable field of the row, preserving the id.
func (r *TransactionRepo) Update(ctx context.Context, t Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE transactions SET
	 description = ?, amount = ?, date = ?, due_date = ?, type = ?, status = ?,
	 account = ?, subcategory = ?, product_id = ?, activity_type = ?, method = ?
	WHERE id = ?`,
		t.Description, t.Amount, t.Date, t.DueDate, t.Type, t.Status,
		t.Account, t.Subcategory, t.ProductID, t.ActivityType, t.Method, t.ID)
	return err
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	return err
}

// Liquidate settles a pending title: paid status, the real settlement date
// and the payment method. Settlement before the due date is accepted.
func (r *TransactionRepo) Liquidate(ctx context.Context, id, settlementDate, method string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE transactions SET status = ?, date = ?, method = ?
	WHERE id = ? AND status = ?`,
		StatusPaid, settlementDate, method, id, StatusPending)
	return err
}

func (r *TransactionRepo) Get(ctx context.Context, id string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, selectTransactions+` WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all transactions newest-first, matching the prepend order of
// the entry screens.
func (r *TransactionRepo) List(ctx context.Context) ([]Transaction, error) {
	return r.query(ctx, selectTransactions+` ORDER BY rowid DESC`)
}

// ListYear returns the transactions dated in the given year, newest-first.
func (r *TransactionRepo) ListYear(ctx context.Context, year int) ([]Transaction, error) {
	return r.query(ctx, selectTransactions+` WHERE substr(date, 1, 4) = ? ORDER BY rowid DESC`, yearPrefix(year))
}

// RenameSubcategory cascades a category rename onto existing rows of the
// same transaction type.
func (r *TransactionRepo) RenameSubcategory(ctx context.Context, typ TransactionType, oldName, newName string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE transactions SET subcategory = ? WHERE type = ? AND subcategory = ?`,
		newName, typ, oldName)
	return err
}

const selectTransactions = `
	SELECT id, description, amount, date, due_date, type, status, account,
	       subcategory, product_id, activity_type, method
	FROM transactions`

func (r *TransactionRepo) query(ctx context.Context, q string, args ...interface{}) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(rs rowScanner) (Transaction, error) {
	var t Transaction
	var productID, activity sql.NullString
	err := rs.Scan(&t.ID, &t.Description, &t.Amount, &t.Date, &t.DueDate, &t.Type,
		&t.Status, &t.Account, &t.Subcategory, &productID, &activity, &t.Method)
	if err != nil {
		return Transaction{}, err
	}
	if productID.Valid {
		t.ProductID = &productID.String
	}
	if activity.Valid {
		a := ActivityType(activity.String)
		t.ActivityType = &a
	}
	return t, nil
}

func yearPrefix(year int) string {
	return fmt.Sprintf("%04d", year)
}
