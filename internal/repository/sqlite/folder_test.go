package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"arkiv/internal/domain"
	"arkiv/internal/models"
)

func TestFolderCreateAndGet(t *testing.T) {
	cfg := newTestConfig(t)
	dept := seedDepartment(t, cfg)
	repo := NewFolderRepository(cfg)
	ctx := context.Background()

	want := seedFolder(t, cfg, dept.ID)

	got, err := repo.GetByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FileCode != want.FileCode || got.Category != want.Category {
		t.Errorf("got %s/%s, want %s/%s", got.FileCode, got.Category, want.FileCode, want.Category)
	}
	if got.Location.Unit == nil || *got.Location.Unit != 1 {
		t.Errorf("unit = %v, want 1", got.Location.Unit)
	}
	if got.Location.Stand != nil || got.PDFPath != nil {
		t.Error("nullable columns should scan back as nil")
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestFolderGetMissing(t *testing.T) {
	cfg := newTestConfig(t)
	repo := NewFolderRepository(cfg)

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID error = %v, want not found", err)
	}
}

func TestFolderCreateUnknownDepartment(t *testing.T) {
	cfg := newTestConfig(t)
	repo := NewFolderRepository(cfg)

	err := repo.Create(context.Background(), testFolder("missing-department"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Create error = %v, want not found from FK violation", err)
	}
}

func TestFolderUpdateStatus(t *testing.T) {
	cfg := newTestConfig(t)
	dept := seedDepartment(t, cfg)
	repo := NewFolderRepository(cfg)
	ctx := context.Background()

	folder := seedFolder(t, cfg, dept.ID)

	stamp := time.Now().UTC().Add(time.Minute).Truncate(time.Second)
	if err := repo.UpdateStatus(ctx, folder.ID, models.FolderStatusCheckedOut, stamp); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, err := repo.GetByID(ctx, folder.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.FolderStatusCheckedOut {
		t.Errorf("status = %s, want checked_out", got.Status)
	}
	if !got.UpdatedAt.Equal(stamp) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, stamp)
	}

	if err := repo.UpdateStatus(ctx, "nope", models.FolderStatusArchived, stamp); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateStatus on missing folder = %v, want not found", err)
	}
}

func TestFolderListFilters(t *testing.T) {
	cfg := newTestConfig(t)
	dept := seedDepartment(t, cfg)
	repo := NewFolderRepository(cfg)
	ctx := context.Background()

	seedFolder(t, cfg, dept.ID)
	second := testFolder(dept.ID)
	second.FileCode = "2021-0001"
	second.Subject = "Payroll records"
	second.Category = models.CategoryFinancial
	second.FileYear = 2021
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cases := []struct {
		name   string
		filter models.FolderFilter
		want   int
	}{
		{"all", models.FolderFilter{}, 2},
		{"by category", models.FolderFilter{Category: models.CategoryFinancial}, 1},
		{"by year", models.FolderFilter{FileYear: 2021}, 1},
		{"by department", models.FolderFilter{DepartmentID: dept.ID}, 2},
		{"search subject", models.FolderFilter{Search: "payroll"}, 1},
		{"search file code", models.FolderFilter{Search: "2021-"}, 1},
		{"no match", models.FolderFilter{Search: "zzz"}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, &tc.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tc.want {
				t.Errorf("List returned %d folders, want %d", len(got), tc.want)
			}
		})
	}
}

func TestFolderSetAttachmentPath(t *testing.T) {
	cfg := newTestConfig(t)
	dept := seedDepartment(t, cfg)
	repo := NewFolderRepository(cfg)
	ctx := context.Background()

	folder := seedFolder(t, cfg, dept.ID)

	if err := repo.SetAttachmentPath(ctx, folder.ID, "pdf_path", "attachments/a.pdf", time.Now().UTC()); err != nil {
		t.Fatalf("SetAttachmentPath: %v", err)
	}
	if err := repo.SetAttachmentPath(ctx, folder.ID, "status", "disposed", time.Now().UTC()); err == nil {
		t.Error("column outside the whitelist must be rejected")
	}

	got, err := repo.GetByID(ctx, folder.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PDFPath == nil || *got.PDFPath != "attachments/a.pdf" {
		t.Errorf("pdf_path = %v", got.PDFPath)
	}
}

func TestFolderCountByColumn(t *testing.T) {
	cfg := newTestConfig(t)
	dept := seedDepartment(t, cfg)
	repo := NewFolderRepository(cfg)
	ctx := context.Background()

	seedFolder(t, cfg, dept.ID)
	second := testFolder(dept.ID)
	second.Category = models.CategoryFinancial
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byStatus, err := repo.CountByColumn(ctx, "status")
	if err != nil {
		t.Fatalf("CountByColumn: %v", err)
	}
	if byStatus[string(models.FolderStatusArchived)] != 2 {
		t.Errorf("archived = %d, want 2", byStatus[string(models.FolderStatusArchived)])
	}

	if _, err := repo.CountByColumn(ctx, "notes"); err == nil {
		t.Error("grouping by an unlisted column must be rejected")
	}
}
