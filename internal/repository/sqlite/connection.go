package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"arkiv/internal/database"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against whichever the context provides.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RepositoryConfig holds shared dependencies for repository implementations.
type RepositoryConfig struct {
	Handle *database.Handle
	Logger *slog.Logger
}

// Executor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction;
// otherwise the live database connection. This lets repositories
// automatically participate in transactions when one exists.
func Executor(ctx context.Context, h *database.Handle) DBTX {
	if tx := GetTx(ctx); tx != nil {
		return tx
	}
	return h.DB()
}
