package service

import (
	"context"
	"errors"
	"testing"

	"arkiv/internal/domain"
	"arkiv/internal/models"
	"arkiv/internal/notify"
)

func TestCreateFolderRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Accounting")

	folder := env.mustCreateFolder(t, dept.ID, nil)

	if folder.Status != models.FolderStatusArchived {
		t.Errorf("new folder status = %s, want %s", folder.Status, models.FolderStatusArchived)
	}
	if folder.RetentionPeriod != 10 {
		t.Errorf("retention period = %d, want 10 (resolved from R10)", folder.RetentionPeriod)
	}
	if folder.CreatedAt.IsZero() || folder.UpdatedAt.IsZero() {
		t.Error("timestamps not set on create")
	}

	got, err := env.folders.Get(context.Background(), folder.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FileCode != folder.FileCode || got.Subject != folder.Subject {
		t.Errorf("round trip mismatch: got %s/%s, want %s/%s",
			got.FileCode, got.Subject, folder.FileCode, folder.Subject)
	}
	if got.Location.Unit == nil || *got.Location.Unit != 1 {
		t.Errorf("location unit not persisted: %+v", got.Location)
	}
	if got.Location.Stand != nil {
		t.Error("stand coordinates should be nil for cell storage")
	}
}

func TestCreateFolderEmitsOneLogAndOneEvent(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Accounting")

	folder := env.mustCreateFolder(t, dept.ID, nil)

	if n := env.countLogs(t, models.LogTypeCreate, folder.ID); n != 1 {
		t.Errorf("create log entries = %d, want exactly 1", n)
	}
	if n := env.countEvents(notify.EventFolderCreated, folder.ID); n != 1 {
		t.Errorf("folder_created events = %d, want exactly 1", n)
	}
}

func TestCreateFolderValidation(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Accounting")

	tests := []struct {
		name   string
		mutate func(*models.CreateFolderRequest)
	}{
		{"missing file code", func(r *models.CreateFolderRequest) { r.FileCode = "" }},
		{"missing subject", func(r *models.CreateFolderRequest) { r.Subject = "" }},
		{"bad category", func(r *models.CreateFolderRequest) { r.Category = "mysterious" }},
		{"unknown retention code", func(r *models.CreateFolderRequest) { r.RetentionCode = "R99" }},
		{"file year too early", func(r *models.CreateFolderRequest) { r.FileYear = 1500 }},
		{"zero file count", func(r *models.CreateFolderRequest) { r.FileCount = 0 }},
		{"bad folder type", func(r *models.CreateFolderRequest) { r.FolderType = "crate" }},
		{"bad storage type", func(r *models.CreateFolderRequest) { r.StorageType = "attic" }},
		{"missing cell coordinates", func(r *models.CreateFolderRequest) { r.Location.Unit = nil }},
		{"cell unit out of range", func(r *models.CreateFolderRequest) { r.Location.Unit = intPtr(999) }},
		{"stand storage missing stand", func(r *models.CreateFolderRequest) {
			r.StorageType = models.StorageTypeStand
			r.Location = models.Location{}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validFolderRequest(dept.ID)
			tt.mutate(req)
			_, err := env.folders.Create(context.Background(), req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Create() error = %v, want validation error", err)
			}
		})
	}
}

func TestCreateFolderUnknownDepartment(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.folders.Create(context.Background(), validFolderRequest("no-such-department"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Create() error = %v, want not found", err)
	}
}

func TestUpdateFolder(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Accounting")
	folder := env.mustCreateFolder(t, dept.ID, nil)

	subject := "Revised annual report"
	code := "R5"
	updated, err := env.folders.Update(context.Background(), folder.ID, &models.UpdateFolderRequest{
		Subject:       &subject,
		RetentionCode: &code,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Subject != subject {
		t.Errorf("subject = %q, want %q", updated.Subject, subject)
	}
	if updated.RetentionPeriod != 5 {
		t.Errorf("retention period = %d, want 5 after code change", updated.RetentionPeriod)
	}
	if !updated.UpdatedAt.After(folder.UpdatedAt) && !updated.UpdatedAt.Equal(folder.UpdatedAt) {
		t.Error("UpdatedAt went backwards")
	}

	if n := env.countLogs(t, models.LogTypeUpdate, folder.ID); n != 1 {
		t.Errorf("update log entries = %d, want exactly 1", n)
	}
	if n := env.countEvents(notify.EventFolderUpdated, folder.ID); n != 1 {
		t.Errorf("folder_updated events = %d, want exactly 1", n)
	}
}

func TestUpdateSwitchesStorageScheme(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Accounting")
	folder := env.mustCreateFolder(t, dept.ID, nil)

	standType := models.StorageTypeStand
	updated, err := env.folders.Update(context.Background(), folder.ID, &models.UpdateFolderRequest{
		StorageType: &standType,
		Location:    &models.Location{Stand: intPtr(4), StandShelf: intPtr(2)},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Location.Unit != nil || updated.Location.Shelf != nil {
		t.Errorf("cell coordinates should be cleared after scheme switch: %+v", updated.Location)
	}
	if updated.Location.Stand == nil || *updated.Location.Stand != 4 {
		t.Errorf("stand coordinate not stored: %+v", updated.Location)
	}
}

func TestDeleteBlockedWhileCheckedOut(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Accounting")
	folder := env.mustCreateFolder(t, dept.ID, nil)

	if _, err := env.checkouts.Checkout(context.Background(), folder.ID, validCheckoutRequest()); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	err := env.folders.Delete(context.Background(), folder.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Delete() error = %v, want conflict", err)
	}

	// The failed delete must leave no trace: folder intact, no audit
	// entry, no event.
	got, err := env.folders.Get(context.Background(), folder.ID)
	if err != nil {
		t.Fatalf("folder gone after failed delete: %v", err)
	}
	if got.Status != models.FolderStatusCheckedOut {
		t.Errorf("status = %s, want checked_out", got.Status)
	}
	if n := env.countLogs(t, models.LogTypeDelete, folder.ID); n != 0 {
		t.Errorf("delete log entries = %d, want 0", n)
	}
	if n := env.countEvents(notify.EventFolderDeleted, folder.ID); n != 0 {
		t.Errorf("folder_deleted events = %d, want 0", n)
	}
}

func TestDeleteFolder(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Accounting")
	folder := env.mustCreateFolder(t, dept.ID, nil)

	if err := env.folders.Delete(context.Background(), folder.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := env.folders.Get(context.Background(), folder.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get after delete error = %v, want not found", err)
	}
	if n := env.countEvents(notify.EventFolderDeleted, folder.ID); n != 1 {
		t.Errorf("folder_deleted events = %d, want exactly 1", n)
	}
}

func TestListFoldersFiltered(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Accounting")

	env.mustCreateFolder(t, dept.ID, nil)
	env.mustCreateFolder(t, dept.ID, func(r *models.CreateFolderRequest) {
		r.FileCode = "2021-0007"
		r.Subject = "Personnel files"
		r.Category = models.CategoryPersonnel
		r.FileYear = 2021
	})

	byCategory, err := env.folders.List(context.Background(), &models.FolderFilter{Category: models.CategoryPersonnel})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byCategory) != 1 {
		t.Fatalf("category filter returned %d folders, want 1", len(byCategory))
	}

	bySearch, err := env.folders.List(context.Background(), &models.FolderFilter{Search: "personnel"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].FileCode != "2021-0007" {
		t.Errorf("search returned %d folders, want the personnel one", len(bySearch))
	}
}

func TestSetAttachment(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Accounting")
	folder := env.mustCreateFolder(t, dept.ID, nil)

	if err := env.folders.SetAttachment(context.Background(), folder.ID, AttachmentPDF, "attachments/x.pdf"); err != nil {
		t.Fatalf("SetAttachment: %v", err)
	}

	got, err := env.folders.Get(context.Background(), folder.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PDFPath == nil || *got.PDFPath != "attachments/x.pdf" {
		t.Errorf("pdf path = %v, want attachments/x.pdf", got.PDFPath)
	}
	if got.ExcelPath != nil {
		t.Errorf("excel path = %v, want nil", got.ExcelPath)
	}
}
