package service

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"arkiv/internal/database"
	"arkiv/internal/domain"
	"arkiv/internal/models"
	"arkiv/internal/repository/sqlite"
)

// BackupService snapshots and restores the database file. Backup and
// restore are server-local operations, so no events are broadcast; both
// leave an audit entry.
type BackupService struct {
	handle *database.Handle
	logs   *sqlite.LogRepository
	dir    string
	keep   int
	logger *slog.Logger
}

// NewBackupService creates a new backup service.
func NewBackupService(handle *database.Handle, logs *sqlite.LogRepository, dir string, keep int, logger *slog.Logger) *BackupService {
	return &BackupService{
		handle: handle,
		logs:   logs,
		dir:    dir,
		keep:   keep,
		logger: logger,
	}
}

// Backup writes a consistent snapshot into the backup directory and prunes
// old snapshots. Returns the snapshot path.
func (s *BackupService) Backup(ctx context.Context) (string, error) {
	path, err := s.handle.Backup(ctx, s.dir, s.keep)
	if err != nil {
		return "", err
	}

	if err := s.logs.Append(ctx, newLogEntry(models.LogTypeBackup, nil,
		"backup created: "+filepath.Base(path))); err != nil {
		s.logger.Warn("backup succeeded but audit entry failed", "error", err)
	}

	s.logger.Info("backup created", "path", path)
	return path, nil
}

// Restore replaces the live database with the snapshot at src. The audit
// entry lands in the restored database.
func (s *BackupService) Restore(ctx context.Context, src string) error {
	if err := s.handle.Restore(ctx, src); err != nil {
		if errors.Is(err, database.ErrInvalidSnapshot) {
			return &domain.ValidationError{Message: "uploaded file is not a valid database snapshot"}
		}
		return err
	}

	if err := s.logs.Append(ctx, newLogEntry(models.LogTypeRestore, nil,
		"database restored from "+filepath.Base(src))); err != nil {
		s.logger.Warn("restore succeeded but audit entry failed", "error", err)
	}

	s.logger.Info("database restored", "source", src)
	return nil
}
