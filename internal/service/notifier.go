package service

import (
	"time"

	"github.com/google/uuid"

	"arkiv/internal/models"
)

// Notifier fans out state-change events to connected clients. The
// notification hub implements it; tests substitute a recorder.
type Notifier interface {
	Broadcast(eventType string, payload map[string]any)
}

// newLogEntry builds one audit trail entry. Every successful mutation
// appends exactly one of these, inside the same transaction as the write.
func newLogEntry(logType models.LogType, folderID *string, details string) *models.LogEntry {
	return &models.LogEntry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Type:      logType,
		FolderID:  folderID,
		Details:   details,
	}
}
