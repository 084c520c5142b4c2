package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"arkiv/internal/config"
	"arkiv/internal/domain"
	"arkiv/internal/models"
	"arkiv/internal/notify"
	"arkiv/internal/repository/sqlite"
	"arkiv/internal/retention"
)

// FolderService owns the folder lifecycle: create, update, delete, and the
// read side. Checkout/return and disposal transitions live in their own
// services but share the same invariants.
type FolderService struct {
	folders     *sqlite.FolderRepository
	departments *sqlite.DepartmentRepository
	settings    *sqlite.SettingsRepository
	logs        *sqlite.LogRepository
	txManager   *sqlite.TransactionManager
	schedule    retention.Schedule
	notifier    Notifier
	logger      *slog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(
	folders *sqlite.FolderRepository,
	departments *sqlite.DepartmentRepository,
	settings *sqlite.SettingsRepository,
	logs *sqlite.LogRepository,
	txManager *sqlite.TransactionManager,
	schedule retention.Schedule,
	notifier Notifier,
	logger *slog.Logger,
) *FolderService {
	return &FolderService{
		folders:     folders,
		departments: departments,
		settings:    settings,
		logs:        logs,
		txManager:   txManager,
		schedule:    schedule,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create validates the request, inserts the folder in its initial archived
// state, appends the audit entry, and emits folder_created.
func (s *FolderService) Create(ctx context.Context, req *models.CreateFolderRequest) (*models.Folder, error) {
	period, err := s.validateFolderFields(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	folder := &models.Folder{
		ID:              uuid.New().String(),
		FileCode:        req.FileCode,
		Subject:         req.Subject,
		Category:        req.Category,
		DepartmentID:    req.DepartmentID,
		RetentionCode:   req.RetentionCode,
		RetentionPeriod: period,
		FileYear:        req.FileYear,
		FileCount:       req.FileCount,
		FolderType:      req.FolderType,
		StorageType:     req.StorageType,
		Location:        normalizeLocation(req.StorageType, req.Location),
		Status:          models.FolderStatusArchived,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folders.Create(ctx, folder); err != nil {
			return err
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeCreate, &folder.ID,
			fmt.Sprintf("folder %s (%s) created", folder.FileCode, folder.Subject)))
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast(notify.EventFolderCreated, map[string]any{"folder_id": folder.ID})

	s.logger.Info("folder created",
		"id", folder.ID,
		"file_code", folder.FileCode,
		"category", folder.Category,
	)
	return folder, nil
}

// Get returns a folder by ID.
func (s *FolderService) Get(ctx context.Context, id string) (*models.Folder, error) {
	return s.folders.GetByID(ctx, id)
}

// List returns folders matching the filter.
func (s *FolderService) List(ctx context.Context, filter *models.FolderFilter) ([]models.Folder, error) {
	return s.folders.List(ctx, filter)
}

// Update applies a partial update to an archived or checked-out folder.
// Disposed folders are immutable.
func (s *FolderService) Update(ctx context.Context, id string, req *models.UpdateFolderRequest) (*models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder.Status == models.FolderStatusDisposed {
		return nil, &domain.ConflictError{
			Message:      "disposed folders cannot be modified",
			ResourceType: "folder",
			ResourceID:   id,
		}
	}

	merged := mergeFolderRequest(folder, req)
	period, err := s.validateFolderFields(ctx, merged)
	if err != nil {
		return nil, err
	}
	if merged.DepartmentID != folder.DepartmentID {
		if _, err := s.departments.GetByID(ctx, merged.DepartmentID); err != nil {
			return nil, err
		}
	}

	folder.FileCode = merged.FileCode
	folder.Subject = merged.Subject
	folder.Category = merged.Category
	folder.DepartmentID = merged.DepartmentID
	folder.RetentionCode = merged.RetentionCode
	folder.RetentionPeriod = period
	folder.FileYear = merged.FileYear
	folder.FileCount = merged.FileCount
	folder.FolderType = merged.FolderType
	folder.StorageType = merged.StorageType
	folder.Location = normalizeLocation(merged.StorageType, merged.Location)
	folder.Notes = merged.Notes
	folder.UpdatedAt = time.Now().UTC()

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folders.Update(ctx, folder); err != nil {
			return err
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeUpdate, &folder.ID,
			fmt.Sprintf("folder %s updated", folder.FileCode)))
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast(notify.EventFolderUpdated, map[string]any{"folder_id": folder.ID})

	s.logger.Info("folder updated", "id", folder.ID, "file_code", folder.FileCode)
	return folder, nil
}

// Delete removes a folder and its dependent rows. Checked-out folders must
// be returned first; disposed folders are immutable.
func (s *FolderService) Delete(ctx context.Context, id string) error {
	folder, err := s.folders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch folder.Status {
	case models.FolderStatusCheckedOut:
		return &domain.ConflictError{
			Message:      "folder is checked out; return it before deleting",
			ResourceType: "folder",
			ResourceID:   id,
		}
	case models.FolderStatusDisposed:
		return &domain.ConflictError{
			Message:      "disposed folders cannot be deleted",
			ResourceType: "folder",
			ResourceID:   id,
		}
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folders.Delete(ctx, id); err != nil {
			return err
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeDelete, &id,
			fmt.Sprintf("folder %s (%s) deleted", folder.FileCode, folder.Subject)))
	})
	if err != nil {
		return err
	}

	s.notifier.Broadcast(notify.EventFolderDeleted, map[string]any{"folder_id": id})

	s.logger.Info("folder deleted", "id", id, "file_code", folder.FileCode)
	return nil
}

// SetAttachment records the stored path of an uploaded PDF or spreadsheet.
func (s *FolderService) SetAttachment(ctx context.Context, id string, kind AttachmentKind, path string) error {
	folder, err := s.folders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if folder.Status == models.FolderStatusDisposed {
		return &domain.ConflictError{
			Message:      "disposed folders cannot be modified",
			ResourceType: "folder",
			ResourceID:   id,
		}
	}

	column := "pdf_path"
	if kind == AttachmentExcel {
		column = "excel_path"
	}
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folders.SetAttachmentPath(ctx, id, column, path, time.Now().UTC()); err != nil {
			return err
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeUpdate, &id,
			fmt.Sprintf("folder %s attachment (%s) stored", folder.FileCode, kind)))
	})
	if err != nil {
		return err
	}

	s.notifier.Broadcast(notify.EventFolderUpdated, map[string]any{"folder_id": id})
	return nil
}

// AttachmentKind selects which attachment slot an upload fills.
type AttachmentKind string

const (
	AttachmentPDF   AttachmentKind = "pdf"
	AttachmentExcel AttachmentKind = "excel"
)

// validateFolderFields checks required-field rules and location coherence.
// Returns the retention period resolved from the schedule.
func (s *FolderService) validateFolderFields(ctx context.Context, req *models.CreateFolderRequest) (int, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.FileCode,
			validation.Required,
			validation.Length(1, config.MaxFileCodeLength),
		),
		validation.Field(&req.Subject,
			validation.Required,
			validation.Length(1, config.MaxSubjectLength),
		),
		validation.Field(&req.Category, validation.Required, validation.By(validCategory)),
		validation.Field(&req.DepartmentID, validation.Required),
		validation.Field(&req.RetentionCode, validation.Required, validation.By(s.knownRetentionCode)),
		validation.Field(&req.FileYear,
			validation.Required,
			validation.Min(config.MinFileYear),
			validation.Max(config.MaxFileYear),
		),
		validation.Field(&req.FileCount, validation.Required, validation.Min(1)),
		validation.Field(&req.FolderType, validation.Required, validation.By(validFolderType)),
		validation.Field(&req.StorageType,
			validation.Required,
			validation.In(models.StorageTypeCell, models.StorageTypeStand),
		),
		validation.Field(&req.Notes, validation.Length(0, config.MaxDetailsLength)),
	)
	if err != nil {
		return 0, asValidationError(err)
	}

	if err := s.validateLocation(ctx, req.StorageType, &req.Location); err != nil {
		return 0, err
	}

	period, _ := s.schedule.Period(req.RetentionCode)
	return period, nil
}

func (s *FolderService) knownRetentionCode(value any) error {
	code, _ := value.(string)
	if _, ok := s.schedule.Period(code); !ok {
		return fmt.Errorf("unknown retention code %q", code)
	}
	return nil
}

// validateLocation requires the coordinate fields matching the chosen
// storage type, bounded by the configured capacity grid.
func (s *FolderService) validateLocation(ctx context.Context, storageType models.StorageType, loc *models.Location) error {
	structure, err := storageStructure(ctx, s.settings)
	if err != nil {
		return err
	}

	var fields []string
	check := func(name string, v *int, max int) {
		switch {
		case v == nil:
			fields = append(fields, fmt.Sprintf("%s: is required", name))
		case *v < 1 || *v > max:
			fields = append(fields, fmt.Sprintf("%s: must be between 1 and %d", name, max))
		}
	}

	switch storageType {
	case models.StorageTypeCell:
		check("unit", loc.Unit, structure.CellUnits)
		check("face", loc.Face, structure.CellFaces)
		check("section", loc.Section, structure.CellSections)
		check("shelf", loc.Shelf, structure.CellShelves)
	case models.StorageTypeStand:
		check("stand", loc.Stand, structure.StandCount)
		check("stand_shelf", loc.StandShelf, structure.StandShelves)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{
			Message: fmt.Sprintf("invalid location for storage type %s", storageType),
			Fields:  fields,
		}
	}
	return nil
}

// normalizeLocation zeroes the coordinate fields of the scheme not in use.
func normalizeLocation(storageType models.StorageType, loc models.Location) models.Location {
	switch storageType {
	case models.StorageTypeCell:
		loc.Stand, loc.StandShelf = nil, nil
	case models.StorageTypeStand:
		loc.Unit, loc.Face, loc.Section, loc.Shelf = nil, nil, nil, nil
	}
	return loc
}

// mergeFolderRequest overlays a partial update on the current folder state.
func mergeFolderRequest(folder *models.Folder, req *models.UpdateFolderRequest) *models.CreateFolderRequest {
	merged := &models.CreateFolderRequest{
		FileCode:      folder.FileCode,
		Subject:       folder.Subject,
		Category:      folder.Category,
		DepartmentID:  folder.DepartmentID,
		RetentionCode: folder.RetentionCode,
		FileYear:      folder.FileYear,
		FileCount:     folder.FileCount,
		FolderType:    folder.FolderType,
		StorageType:   folder.StorageType,
		Location:      folder.Location,
		Notes:         folder.Notes,
	}

	if req.FileCode != nil {
		merged.FileCode = *req.FileCode
	}
	if req.Subject != nil {
		merged.Subject = *req.Subject
	}
	if req.Category != nil {
		merged.Category = *req.Category
	}
	if req.DepartmentID != nil {
		merged.DepartmentID = *req.DepartmentID
	}
	if req.RetentionCode != nil {
		merged.RetentionCode = *req.RetentionCode
	}
	if req.FileYear != nil {
		merged.FileYear = *req.FileYear
	}
	if req.FileCount != nil {
		merged.FileCount = *req.FileCount
	}
	if req.FolderType != nil {
		merged.FolderType = *req.FolderType
	}
	if req.StorageType != nil {
		merged.StorageType = *req.StorageType
	}
	if req.Location != nil {
		merged.Location = *req.Location
	}
	if req.Notes != nil {
		merged.Notes = *req.Notes
	}
	return merged
}
