package service

import (
	"context"
	"encoding/json"
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

// DisposalService handles the terminal Archived -> Disposed transition and
// the retention-rule queries around it.
type DisposalService struct {
	folders   *sqlite.FolderRepository
	disposals *sqlite.DisposalRepository
	logs      *sqlite.LogRepository
	txManager *sqlite.TransactionManager
	notifier  Notifier
	logger    *slog.Logger
}

// NewDisposalService creates a new disposal service.
func NewDisposalService(
	folders *sqlite.FolderRepository,
	disposals *sqlite.DisposalRepository,
	logs *sqlite.LogRepository,
	txManager *sqlite.TransactionManager,
	notifier Notifier,
	logger *slog.Logger,
) *DisposalService {
	return &DisposalService{
		folders:   folders,
		disposals: disposals,
		logs:      logs,
		txManager: txManager,
		notifier:  notifier,
		logger:    logger,
	}
}

// Dispose permanently destroys a folder's record standing. The folder must
// be archived and eligible by the retention rule, unless override is set.
// A JSON snapshot of the folder is kept on the disposal row for audit.
func (s *DisposalService) Dispose(ctx context.Context, folderID string, req *models.CreateDisposalRequest) (*models.Disposal, error) {
	if err := validation.Validate(req.Reason, validation.Length(0, config.MaxDetailsLength)); err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("reason: %v", err)}
	}

	folder, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	switch folder.Status {
	case models.FolderStatusCheckedOut:
		return nil, &domain.ConflictError{
			Message:      "folder is checked out; return it before disposing",
			ResourceType: "folder",
			ResourceID:   folderID,
		}
	case models.FolderStatusDisposed:
		return nil, &domain.ConflictError{
			Message:      "folder is already disposed",
			ResourceType: "folder",
			ResourceID:   folderID,
		}
	}

	eligibility := retention.Eligibility(folder.FileYear, folder.RetentionPeriod, time.Now().UTC().Year())
	if !eligibility.Eligible && !req.Override {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("folder is not eligible for disposal (%s)", eligibility.Display),
			ResourceType: "folder",
			ResourceID:   folderID,
		}
	}

	snapshot, err := json.Marshal(folder)
	if err != nil {
		return nil, fmt.Errorf("snapshot folder: %w", err)
	}

	now := time.Now().UTC()
	disposal := &models.Disposal{
		ID:             uuid.New().String(),
		FolderID:       folderID,
		Reason:         req.Reason,
		DisposedAt:     now,
		FolderSnapshot: string(snapshot),
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.disposals.Create(ctx, disposal); err != nil {
			return err
		}
		if err := s.folders.UpdateStatus(ctx, folderID, models.FolderStatusDisposed, now); err != nil {
			return err
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeDispose, &folderID,
			fmt.Sprintf("folder %s disposed (%s)", folder.FileCode, eligibility.Display)))
	})
	if err != nil {
		return nil, err
	}

	// Disposal changes the folder's state; on the wire it is a folder
	// update, matching the event set clients already handle.
	s.notifier.Broadcast(notify.EventFolderUpdated, map[string]any{
		"folder_id": folderID,
		"status":    models.FolderStatusDisposed,
	})

	s.logger.Info("folder disposed",
		"folder_id", folderID,
		"disposal_id", disposal.ID,
		"override", req.Override,
	)
	return disposal, nil
}

// List returns all disposal records.
func (s *DisposalService) List(ctx context.Context) ([]models.Disposal, error) {
	return s.disposals.List(ctx)
}

// Eligibility reports a folder's standing against the retention rule.
func (s *DisposalService) Eligibility(ctx context.Context, folderID string) (*models.DisposalEligibility, error) {
	folder, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	e := retention.Eligibility(folder.FileYear, folder.RetentionPeriod, time.Now().UTC().Year())
	return &e, nil
}

// ListEligible returns archived folders whose retention period has lapsed.
func (s *DisposalService) ListEligible(ctx context.Context) ([]models.Folder, error) {
	folders, err := s.folders.List(ctx, &models.FolderFilter{Status: models.FolderStatusArchived})
	if err != nil {
		return nil, err
	}

	nowYear := time.Now().UTC().Year()
	var eligible []models.Folder
	for _, f := range folders {
		if retention.Eligibility(f.FileYear, f.RetentionPeriod, nowYear).Eligible {
			eligible = append(eligible, f)
		}
	}
	return eligible, nil
}
