package service

import (
	"context"

	"arkiv/internal/models"
	"arkiv/internal/repository/sqlite"
)

// LogService exposes the read side of the audit trail. Entries are only
// ever written by the other services, inside their mutation transactions.
type LogService struct {
	logs *sqlite.LogRepository
}

// NewLogService creates a new log service.
func NewLogService(logs *sqlite.LogRepository) *LogService {
	return &LogService{logs: logs}
}

// List returns audit entries matching the filter, newest first.
func (s *LogService) List(ctx context.Context, filter *models.LogFilter) ([]models.LogEntry, error) {
	return s.logs.List(ctx, filter)
}
