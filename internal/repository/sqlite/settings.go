package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"arkiv/internal/database"
	"arkiv/internal/domain"
)

// SettingsRepository persists key/value operational parameters.
type SettingsRepository struct {
	handle *database.Handle
	logger *slog.Logger
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(cfg *RepositoryConfig) *SettingsRepository {
	return &SettingsRepository{handle: cfg.Handle, logger: cfg.Logger}
}

// Get returns the value for a key.
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := Executor(ctx, r.handle).QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if IsNoRows(err) {
		return "", &domain.NotFoundError{Message: fmt.Sprintf("setting %s not found", key)}
	}
	if err != nil {
		return "", &domain.StorageError{Message: "getting setting", Err: err}
	}
	return value, nil
}

// Set upserts a key/value pair.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := Executor(ctx, r.handle).ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return &domain.StorageError{Message: "setting value", Err: err}
	}
	return nil
}

// All returns every settings row as a map.
func (r *SettingsRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := Executor(ctx, r.handle).QueryContext(ctx,
		`SELECT key, value FROM settings ORDER BY key`,
	)
	if err != nil {
		return nil, &domain.StorageError{Message: "listing settings", Err: err}
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, &domain.StorageError{Message: "scanning setting", Err: err}
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Message: "listing settings", Err: err}
	}
	return settings, nil
}
