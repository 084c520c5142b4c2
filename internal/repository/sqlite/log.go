package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"arkiv/internal/database"
	"arkiv/internal/domain"
	"arkiv/internal/models"
)

// defaultLogLimit caps unbounded audit listings.
const defaultLogLimit = 200

// LogRepository persists the append-only audit trail. There is deliberately
// no update or delete here.
type LogRepository struct {
	handle *database.Handle
	logger *slog.Logger
}

// NewLogRepository creates a new log repository.
func NewLogRepository(cfg *RepositoryConfig) *LogRepository {
	return &LogRepository{handle: cfg.Handle, logger: cfg.Logger}
}

// Append adds one audit entry.
func (r *LogRepository) Append(ctx context.Context, entry *models.LogEntry) error {
	_, err := Executor(ctx, r.handle).ExecContext(ctx,
		`INSERT INTO logs (id, timestamp, type, folder_id, details)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.Type, entry.FolderID, entry.Details,
	)
	if err != nil {
		return &domain.StorageError{Message: "appending log entry", Err: err}
	}
	return nil
}

// List returns audit entries matching the filter, newest first.
func (r *LogRepository) List(ctx context.Context, filter *models.LogFilter) ([]models.LogEntry, error) {
	query := `SELECT id, timestamp, type, folder_id, details FROM logs`
	var clauses []string
	var args []any

	limit := defaultLogLimit
	if filter != nil {
		if filter.Type != "" {
			clauses = append(clauses, "type = ?")
			args = append(args, filter.Type)
		}
		if filter.FolderID != "" {
			clauses = append(clauses, "folder_id = ?")
			args = append(args, filter.FolderID)
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := Executor(ctx, r.handle).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Message: "listing log entries", Err: err}
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		var folderID sql.NullString
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Type, &folderID, &e.Details); err != nil {
			return nil, &domain.StorageError{Message: "scanning log entry", Err: err}
		}
		if folderID.Valid {
			e.FolderID = &folderID.String
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Message: "listing log entries", Err: err}
	}
	return entries, nil
}

// Count returns the total number of audit entries.
func (r *LogRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := Executor(ctx, r.handle).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM logs`,
	).Scan(&n)
	if err != nil {
		return 0, &domain.StorageError{Message: "counting log entries", Err: err}
	}
	return n, nil
}
