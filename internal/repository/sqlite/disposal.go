package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"arkiv/internal/database"
	"arkiv/internal/domain"
	"arkiv/internal/models"
)

const disposalColumns = `id, folder_id, reason, disposed_at, folder_snapshot`

// DisposalRepository persists destruction records.
type DisposalRepository struct {
	handle *database.Handle
	logger *slog.Logger
}

// NewDisposalRepository creates a new disposal repository.
func NewDisposalRepository(cfg *RepositoryConfig) *DisposalRepository {
	return &DisposalRepository{handle: cfg.Handle, logger: cfg.Logger}
}

// Create inserts a disposal record.
func (r *DisposalRepository) Create(ctx context.Context, d *models.Disposal) error {
	_, err := Executor(ctx, r.handle).ExecContext(ctx,
		`INSERT INTO disposals (`+disposalColumns+`) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.FolderID, d.Reason, d.DisposedAt, d.FolderSnapshot,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", d.FolderID)}
		}
		return &domain.StorageError{Message: "creating disposal", Err: err}
	}
	return nil
}

// GetByFolder returns the disposal record for a folder.
func (r *DisposalRepository) GetByFolder(ctx context.Context, folderID string) (*models.Disposal, error) {
	var d models.Disposal
	err := Executor(ctx, r.handle).QueryRowContext(ctx,
		`SELECT `+disposalColumns+` FROM disposals WHERE folder_id = ?`, folderID,
	).Scan(&d.ID, &d.FolderID, &d.Reason, &d.DisposedAt, &d.FolderSnapshot)
	if IsNoRows(err) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("no disposal for folder %s", folderID)}
	}
	if err != nil {
		return nil, &domain.StorageError{Message: "getting disposal", Err: err}
	}
	return &d, nil
}

// List returns all disposals, newest first.
func (r *DisposalRepository) List(ctx context.Context) ([]models.Disposal, error) {
	rows, err := Executor(ctx, r.handle).QueryContext(ctx,
		`SELECT `+disposalColumns+` FROM disposals ORDER BY disposed_at DESC`,
	)
	if err != nil {
		return nil, &domain.StorageError{Message: "listing disposals", Err: err}
	}
	defer rows.Close()

	var disposals []models.Disposal
	for rows.Next() {
		var d models.Disposal
		if err := rows.Scan(&d.ID, &d.FolderID, &d.Reason, &d.DisposedAt, &d.FolderSnapshot); err != nil {
			return nil, &domain.StorageError{Message: "scanning disposal", Err: err}
		}
		disposals = append(disposals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Message: "listing disposals", Err: err}
	}
	return disposals, nil
}

// Count returns the number of disposal records.
func (r *DisposalRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := Executor(ctx, r.handle).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM disposals`,
	).Scan(&n)
	if err != nil {
		return 0, &domain.StorageError{Message: "counting disposals", Err: err}
	}
	return n, nil
}
