package models

import (
	"time"
)

// LogType enumerates audit trail entry kinds.
type LogType string

const (
	LogTypeCreate         LogType = "create"
	LogTypeUpdate         LogType = "update"
	LogTypeDelete         LogType = "delete"
	LogTypeCheckout       LogType = "checkout"
	LogTypeReturn         LogType = "return"
	LogTypeDispose        LogType = "dispose"
	LogTypeSettingsUpdate LogType = "settings_update"
	LogTypeBackup         LogType = "backup"
	LogTypeRestore        LogType = "restore"
)

// LogEntry is an append-only audit record; never mutated or deleted by
// normal operation.
type LogEntry struct {
	ID        string    `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Type      LogType   `json:"type" db:"type"`
	FolderID  *string   `json:"folder_id,omitempty" db:"folder_id"`
	Details   string    `json:"details,omitempty" db:"details"`
}

// LogFilter narrows audit log listings.
type LogFilter struct {
	Type     LogType
	FolderID string
	Limit    int // 0 = server default
}
