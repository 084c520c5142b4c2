package service

import (
	"context"
	"errors"
	"testing"

	"arkiv/internal/domain"
	"arkiv/internal/models"
)

func TestSettingsUpdateAndReadBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.settings.Update(ctx, map[string]string{
		models.SettingInstitutionName: "Municipal Archive",
		models.SettingStandCount:      "25",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	all, err := env.settings.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if all[models.SettingInstitutionName] != "Municipal Archive" {
		t.Errorf("institution name = %q", all[models.SettingInstitutionName])
	}

	structure, err := env.settings.StorageStructure(ctx)
	if err != nil {
		t.Fatalf("StorageStructure: %v", err)
	}
	if structure.StandCount != 25 {
		t.Errorf("stand count = %d, want 25", structure.StandCount)
	}
}

func TestSettingsRejectNonNumericCapacity(t *testing.T) {
	env := newTestEnv(t)

	err := env.settings.Update(context.Background(), map[string]string{
		models.SettingCellUnits: "lots",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Update() error = %v, want validation error", err)
	}
}

func TestDepartmentDeleteBlockedWhileReferenced(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Technical")
	env.mustCreateFolder(t, dept.ID, nil)

	err := env.departments.Delete(context.Background(), dept.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Delete() error = %v, want conflict while folders reference it", err)
	}
}

func TestDepartmentDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateDepartment(t, "Technical")

	_, err := env.departments.Create(context.Background(), &models.CreateDepartmentRequest{Name: "Technical"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create() error = %v, want conflict for duplicate name", err)
	}
}
