package models

// Setting is one operational parameter, stored as a key/value row.
type Setting struct {
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`
}

// Well-known settings keys. The storage structure keys describe the physical
// capacity grid and bound folder location coordinates.
const (
	SettingCellUnits    = "storage.cell.units"
	SettingCellFaces    = "storage.cell.faces"
	SettingCellSections = "storage.cell.sections"
	SettingCellShelves  = "storage.cell.shelves"
	SettingStandCount   = "storage.stand.count"
	SettingStandShelves = "storage.stand.shelves"

	SettingInstitutionName = "institution.name"
	SettingCheckoutDays    = "checkout.default_days"
)

// StorageStructure is the physical capacity grid derived from settings.
type StorageStructure struct {
	CellUnits    int `json:"cell_units"`
	CellFaces    int `json:"cell_faces"`
	CellSections int `json:"cell_sections"`
	CellShelves  int `json:"cell_shelves"`
	StandCount   int `json:"stand_count"`
	StandShelves int `json:"stand_shelves"`
}

// DashboardStats is the aggregate view served to the dashboard.
type DashboardStats struct {
	TotalFolders        int            `json:"total_folders"`
	ByStatus            map[string]int `json:"by_status"`
	ByCategory          map[string]int `json:"by_category"`
	OpenCheckouts       int            `json:"open_checkouts"`
	OverdueCheckouts    int            `json:"overdue_checkouts"`
	EligibleForDisposal int            `json:"eligible_for_disposal"`
	Disposed            int            `json:"disposed"`
}
