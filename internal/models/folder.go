package models

import (
	"time"
)

// FolderStatus tracks a folder through its lifecycle. A folder starts
// archived, may cycle through checked_out and back, and ends disposed.
type FolderStatus string

const (
	FolderStatusArchived   FolderStatus = "archived"
	FolderStatusCheckedOut FolderStatus = "checked_out"
	FolderStatusDisposed   FolderStatus = "disposed"
)

// StorageType selects which physical shelving scheme the folder lives in,
// and therefore which location coordinates apply.
type StorageType string

const (
	// StorageTypeCell addresses compact shelving: unit/face/section/shelf.
	StorageTypeCell StorageType = "cell"
	// StorageTypeStand addresses free-standing racks: stand/shelf.
	StorageTypeStand StorageType = "stand"
)

// Category is the fixed classification enumeration for folders.
type Category string

const (
	CategoryAdministrative Category = "administrative"
	CategoryFinancial      Category = "financial"
	CategoryPersonnel      Category = "personnel"
	CategoryTechnical      Category = "technical"
	CategoryLegal          Category = "legal"
	CategoryCorrespondence Category = "correspondence"
	CategoryOther          Category = "other"
)

// Categories lists all valid folder categories.
var Categories = []Category{
	CategoryAdministrative,
	CategoryFinancial,
	CategoryPersonnel,
	CategoryTechnical,
	CategoryLegal,
	CategoryCorrespondence,
	CategoryOther,
}

// FolderType is the physical container type.
type FolderType string

const (
	FolderTypeBinder   FolderType = "binder"
	FolderTypeBox      FolderType = "box"
	FolderTypeEnvelope FolderType = "envelope"
	FolderTypeFile     FolderType = "file"
)

// FolderTypes lists all valid folder types.
var FolderTypes = []FolderType{
	FolderTypeBinder,
	FolderTypeBox,
	FolderTypeEnvelope,
	FolderTypeFile,
}

type Folder struct {
	ID              string       `json:"id" db:"id"`
	FileCode        string       `json:"file_code" db:"file_code"`
	Subject         string       `json:"subject" db:"subject"`
	Category        Category     `json:"category" db:"category"`
	DepartmentID    string       `json:"department_id" db:"department_id"`
	RetentionCode   string       `json:"retention_code" db:"retention_code"`
	RetentionPeriod int          `json:"retention_period" db:"retention_period"` // years; 0 = permanent
	FileYear        int          `json:"file_year" db:"file_year"`
	FileCount       int          `json:"file_count" db:"file_count"`
	FolderType      FolderType   `json:"folder_type" db:"folder_type"`
	StorageType     StorageType  `json:"storage_type" db:"storage_type"`
	Location        Location     `json:"location"`
	Status          FolderStatus `json:"status" db:"status"`
	PDFPath         *string      `json:"pdf_path,omitempty" db:"pdf_path"`
	ExcelPath       *string      `json:"excel_path,omitempty" db:"excel_path"`
	Notes           string       `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// Location holds the coordinates for either storage scheme. Only the fields
// matching the folder's StorageType are meaningful; the rest stay nil.
type Location struct {
	// Cell scheme
	Unit    *int `json:"unit,omitempty" db:"unit"`
	Face    *int `json:"face,omitempty" db:"face"`
	Section *int `json:"section,omitempty" db:"section"`
	Shelf   *int `json:"shelf,omitempty" db:"shelf"`
	// Stand scheme
	Stand      *int `json:"stand,omitempty" db:"stand"`
	StandShelf *int `json:"stand_shelf,omitempty" db:"stand_shelf"`
}

type CreateFolderRequest struct {
	FileCode      string      `json:"file_code"`
	Subject       string      `json:"subject"`
	Category      Category    `json:"category"`
	DepartmentID  string      `json:"department_id"`
	RetentionCode string      `json:"retention_code"`
	FileYear      int         `json:"file_year"`
	FileCount     int         `json:"file_count"`
	FolderType    FolderType  `json:"folder_type"`
	StorageType   StorageType `json:"storage_type"`
	Location      Location    `json:"location"`
	Notes         string      `json:"notes,omitempty"`
}

type UpdateFolderRequest struct {
	FileCode      *string      `json:"file_code,omitempty"`
	Subject       *string      `json:"subject,omitempty"`
	Category      *Category    `json:"category,omitempty"`
	DepartmentID  *string      `json:"department_id,omitempty"`
	RetentionCode *string      `json:"retention_code,omitempty"`
	FileYear      *int         `json:"file_year,omitempty"`
	FileCount     *int         `json:"file_count,omitempty"`
	FolderType    *FolderType  `json:"folder_type,omitempty"`
	StorageType   *StorageType `json:"storage_type,omitempty"`
	Location      *Location    `json:"location,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
}

// FolderFilter narrows folder listings.
type FolderFilter struct {
	Status       FolderStatus
	Category     Category
	DepartmentID string
	FileYear     int    // 0 = any
	StorageType  StorageType
	Search       string // matches file_code or subject, case-insensitive
}

type FolderListResponse struct {
	Folders []Folder `json:"folders"`
	Total   int      `json:"total"`
}
