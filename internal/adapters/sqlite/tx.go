package sqlite

import (
	"database/sql"
	"fmt"

	"rendervault/internal/domain"
	"rendervault/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// Exists reports whether a pool name is already indexed in a category
func (t *indexTx) Exists(category domain.Category, name string) (bool, error) {
	table, err := tableFor(category)
	if err != nil {
		return false, err
	}

	var n int
	err = t.tx.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE NAME = ?`, table), name).Scan(&n)
	return n > 0, err
}

// Insert adds a row
func (t *indexTx) Insert(category domain.Category, name, root string) error {
	table, err := tableFor(category)
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(fmt.Sprintf(`INSERT INTO %s (NAME, PATH) VALUES (?, ?)`, table), name, root)
	return err
}

// Delete removes rows matching name and returns how many were removed
func (t *indexTx) Delete(category domain.Category, name string) (int64, error) {
	table, err := tableFor(category)
	if err != nil {
		return 0, err
	}

	res, err := t.tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE NAME = ?`, table), name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
