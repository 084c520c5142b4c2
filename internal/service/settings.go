package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"arkiv/internal/domain"
	"arkiv/internal/models"
	"arkiv/internal/repository/sqlite"
)

// numericSettings lists keys whose values must parse as positive integers.
var numericSettings = map[string]bool{
	models.SettingCellUnits:    true,
	models.SettingCellFaces:    true,
	models.SettingCellSections: true,
	models.SettingCellShelves:  true,
	models.SettingStandCount:   true,
	models.SettingStandShelves: true,
	models.SettingCheckoutDays: true,
}

// SettingsService manages institution-wide configuration values.
type SettingsService struct {
	settings  *sqlite.SettingsRepository
	logs      *sqlite.LogRepository
	txManager *sqlite.TransactionManager
	logger    *slog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(
	settings *sqlite.SettingsRepository,
	logs *sqlite.LogRepository,
	txManager *sqlite.TransactionManager,
	logger *slog.Logger,
) *SettingsService {
	return &SettingsService{
		settings:  settings,
		logs:      logs,
		txManager: txManager,
		logger:    logger,
	}
}

// All returns every setting as a key/value map.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	return s.settings.All(ctx)
}

// Update applies the given key/value pairs and records one audit entry
// covering the whole batch.
func (s *SettingsService) Update(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return &domain.ValidationError{Message: "no settings provided"}
	}

	keys := make([]string, 0, len(values))
	for key, value := range values {
		if numericSettings[key] {
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return &domain.ValidationError{
					Message: fmt.Sprintf("%s must be a positive integer", key),
					Fields:  []string{key},
				}
			}
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		for _, key := range keys {
			if err := s.settings.Set(ctx, key, values[key]); err != nil {
				return err
			}
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeSettingsUpdate, nil,
			"settings updated: "+strings.Join(keys, ", ")))
	})
	if err != nil {
		return err
	}

	s.logger.Info("settings updated", "keys", keys)
	return nil
}

// StorageStructure returns the physical capacity grid derived from settings.
func (s *SettingsService) StorageStructure(ctx context.Context) (*models.StorageStructure, error) {
	return storageStructure(ctx, s.settings)
}
