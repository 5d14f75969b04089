package database

import (
	"context"
	"database/sql"

	"github.com/rfarias/meibooks/internal/database/repository"
)

// RenameCategory renames a label and cascades the new name onto existing
// transactions of the same type atomically, so a crash between the two
// updates cannot leave rows pointing at a label that no longer exists.
func RenameCategory(ctx context.Context, db *sql.DB, typ repository.TransactionType, oldName, newName string) error {
	return WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE categories SET name = ? WHERE type = ? AND name = ?`, newName, typ, oldName); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE transactions SET subcategory = ? WHERE type = ? AND subcategory = ?`, newName, typ, oldName)
		return err
	})
}
