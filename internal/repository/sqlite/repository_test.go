package sqlite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"arkiv/internal/database"
	"arkiv/internal/models"
)

func newTestConfig(t *testing.T) *RepositoryConfig {
	t.Helper()
	return &RepositoryConfig{
		Handle: database.NewTestHandle(t),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func seedDepartment(t *testing.T, cfg *RepositoryConfig) *models.Department {
	t.Helper()
	repo := NewDepartmentRepository(cfg)
	dept := &models.Department{ID: uuid.New().String(), Name: "Registry " + uuid.New().String()[:8], Active: true}
	if err := repo.Create(context.Background(), dept); err != nil {
		t.Fatalf("seeding department: %v", err)
	}
	return dept
}

func testFolder(departmentID string) *models.Folder {
	now := time.Now().UTC().Truncate(time.Second)
	unit, face, section, shelf := 1, 2, 3, 4
	return &models.Folder{
		ID:              uuid.New().String(),
		FileCode:        "2019-0101",
		Subject:         "Construction permits",
		Category:        models.CategoryTechnical,
		DepartmentID:    departmentID,
		RetentionCode:   "R10",
		RetentionPeriod: 10,
		FileYear:        2019,
		FileCount:       2,
		FolderType:      models.FolderTypeBox,
		StorageType:     models.StorageTypeCell,
		Location:        models.Location{Unit: &unit, Face: &face, Section: &section, Shelf: &shelf},
		Status:          models.FolderStatusArchived,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func seedFolder(t *testing.T, cfg *RepositoryConfig, departmentID string) *models.Folder {
	t.Helper()
	repo := NewFolderRepository(cfg)
	f := testFolder(departmentID)
	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("seeding folder: %v", err)
	}
	return f
}

func testCheckout(folderID string) *models.Checkout {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Checkout{
		ID:                uuid.New().String(),
		FolderID:          folderID,
		Type:              models.CheckoutTypeFull,
		PersonName:        "Ivan",
		PersonSurname:     "Novak",
		Phone:             "051111222",
		CheckoutDate:      now,
		PlannedReturnDate: now.AddDate(0, 0, 7),
		Status:            models.CheckoutStatusCheckedOut,
	}
}
