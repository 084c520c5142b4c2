package models

import (
	"time"
)

// Disposal records permanent destruction of a folder. FolderSnapshot keeps a
// JSON copy of the folder at disposal time so the audit survives even if the
// folder row is later deleted.
type Disposal struct {
	ID             string    `json:"id" db:"id"`
	FolderID       string    `json:"folder_id" db:"folder_id"`
	Reason         string    `json:"reason,omitempty" db:"reason"`
	DisposedAt     time.Time `json:"disposed_at" db:"disposed_at"`
	FolderSnapshot string    `json:"folder_snapshot" db:"folder_snapshot"`
}

type CreateDisposalRequest struct {
	Reason   string `json:"reason,omitempty"`
	Override bool   `json:"override,omitempty"` // dispose before the retention rule allows it
}

// DisposalEligibility describes where a folder stands relative to its
// destruction year.
type DisposalEligibility struct {
	Eligible        bool   `json:"eligible"`
	Permanent       bool   `json:"permanent"`
	DestructionYear int    `json:"destruction_year,omitempty"`
	YearsRemaining  int    `json:"years_remaining"` // negative = years overdue
	Display         string `json:"display"`
}
