// Package retention holds the retention schedule (code -> years) and the
// disposal eligibility rule derived from it.
package retention

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"arkiv/internal/models"
)

// Permanent marks a retention code whose folders are never disposed.
const Permanent = 0

// Schedule maps retention codes to retention periods in years.
type Schedule map[string]int

// DefaultSchedule returns the built-in retention schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		"R1":   1,
		"R5":   5,
		"R10":  10,
		"R15":  15,
		"R30":  30,
		"PERM": Permanent,
	}
}

// scheduleFile is the YAML shape for a schedule override file.
type scheduleFile struct {
	Codes map[string]int `yaml:"codes"`
}

// LoadSchedule reads a schedule override from a YAML file. An empty path
// returns the default schedule.
func LoadSchedule(path string) (Schedule, error) {
	if path == "" {
		return DefaultSchedule(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read retention schedule: %w", err)
	}

	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse retention schedule: %w", err)
	}
	if len(file.Codes) == 0 {
		return nil, fmt.Errorf("retention schedule %s defines no codes", path)
	}

	s := make(Schedule, len(file.Codes))
	for code, years := range file.Codes {
		if years < 0 {
			return nil, fmt.Errorf("retention code %s has negative period %d", code, years)
		}
		s[code] = years
	}
	return s, nil
}

// Period returns the retention period for a code, or false if the code is
// not in the schedule.
func (s Schedule) Period(code string) (int, bool) {
	years, ok := s[code]
	return years, ok
}

// DestructionYear returns the first year a folder may be disposed.
// Retention counts inclusive calendar years, so destruction happens the year
// after the period lapses: fileYear + retentionPeriod + 1.
func DestructionYear(fileYear, retentionPeriod int) int {
	return fileYear + retentionPeriod + 1
}

// Eligibility evaluates a folder's disposal standing in the given year.
// A zero retention period means permanent retention.
func Eligibility(fileYear, retentionPeriod, nowYear int) models.DisposalEligibility {
	if retentionPeriod == Permanent {
		return models.DisposalEligibility{
			Permanent: true,
			Display:   "permanent retention",
		}
	}

	destructionYear := DestructionYear(fileYear, retentionPeriod)
	remaining := destructionYear - nowYear

	e := models.DisposalEligibility{
		Eligible:        remaining <= 0,
		DestructionYear: destructionYear,
		YearsRemaining:  remaining,
	}

	switch {
	case remaining > 1:
		e.Display = fmt.Sprintf("%d years remaining", remaining)
	case remaining == 1:
		e.Display = "1 year remaining"
	case remaining == 0:
		e.Display = "this year"
	case remaining == -1:
		e.Display = "1 year overdue"
	default:
		e.Display = fmt.Sprintf("%d years overdue", -remaining)
	}
	return e
}
