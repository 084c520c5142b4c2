package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"arkiv/internal/database"
)

type txContextKey struct{}

// SetTx stores a transaction in the context.
func SetTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetTx retrieves the transaction from the context, or nil.
func GetTx(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txContextKey{}).(*sql.Tx)
	return tx
}

// TxFn is a function that runs within a transaction.
type TxFn func(ctx context.Context) error

// TransactionManager runs functions as one atomic unit of work.
type TransactionManager struct {
	handle *database.Handle
}

// NewTransactionManager creates a new transaction manager.
func NewTransactionManager(handle *database.Handle) *TransactionManager {
	return &TransactionManager{handle: handle}
}

// ExecTx executes fn within a transaction. The transaction is stored in the
// context so repositories called from fn join it automatically.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn TxFn) error {
	tx, err := tm.handle.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Defer rollback - returns ErrTxDone after a successful commit, which is
	// fine to ignore.
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			fmt.Printf("rollback failed: %v\n", err)
		}
	}()

	if err := fn(SetTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
