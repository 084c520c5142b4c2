package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ErrInvalidSnapshot marks a restore source that is not an openable SQLite
// database. The live database is untouched when this is returned.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Backup writes a consistent snapshot of the database into dir and prunes
// old snapshots down to keep. VACUUM INTO produces a compacted standalone
// copy even under WAL, without blocking readers.
func (h *Handle) Backup(ctx context.Context, dir string, keep int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	dest := filepath.Join(dir, fmt.Sprintf("arkiv-%s.db",
		time.Now().Format("2006-01-02T15-04-05")))

	h.mu.RLock()
	_, err := h.db.ExecContext(ctx, `VACUUM INTO ?`, dest)
	h.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("backup database: %w", err)
	}

	if err := pruneBackups(dir, keep); err != nil {
		// Pruning failure doesn't invalidate the snapshot just written.
		return dest, fmt.Errorf("prune old backups: %w", err)
	}

	return dest, nil
}

// Restore replaces the live database file with the snapshot at src and
// reopens the connection. The snapshot is validated by opening it first.
func (h *Handle) Restore(ctx context.Context, src string) error {
	// Verify the snapshot is an openable database before touching anything.
	check, err := Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := check.PingContext(ctx); err != nil {
		check.Close()
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	check.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	// WAL sidecar files belong to the old database.
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(h.path + suffix)
	}

	if err := copyFile(src, h.path); err != nil {
		// Try to come back up on the old file regardless.
		if reopenErr := h.reopen(); reopenErr != nil {
			return fmt.Errorf("restore failed (%v) and reopen failed: %w", err, reopenErr)
		}
		return fmt.Errorf("copy snapshot: %w", err)
	}

	return h.reopen()
}

func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0644)
}

// pruneBackups removes oldest snapshots when count exceeds keep.
func pruneBackups(dir string, keep int) error {
	pattern := filepath.Join(dir, "arkiv-*.db")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	if keep <= 0 || len(files) <= keep {
		return nil
	}

	// Sort by name (timestamp format ensures chronological order)
	sort.Strings(files)

	for i := 0; i < len(files)-keep; i++ {
		if err := os.Remove(files[i]); err != nil {
			return fmt.Errorf("remove %s: %w", files[i], err)
		}
	}
	return nil
}
