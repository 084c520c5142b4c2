package database

import (
	"database/sql"
	"fmt"

	"arkiv/internal/models"
)

// defaultSettings are inserted once on first startup; administrators change
// them later through the settings endpoints.
var defaultSettings = map[string]string{
	models.SettingCellUnits:       "10",
	models.SettingCellFaces:       "2",
	models.SettingCellSections:    "6",
	models.SettingCellShelves:     "5",
	models.SettingStandCount:      "20",
	models.SettingStandShelves:    "4",
	models.SettingInstitutionName: "",
	models.SettingCheckoutDays:    "14",
}

// SeedDefaults inserts default settings rows that don't exist yet.
func SeedDefaults(db *sql.DB) error {
	for key, value := range defaultSettings {
		if _, err := db.Exec(
			`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
			key, value,
		); err != nil {
			return fmt.Errorf("seeding setting %s: %w", key, err)
		}
	}
	return nil
}
