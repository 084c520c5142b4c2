package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"arkiv/internal/config"
	"arkiv/internal/domain"
	"arkiv/internal/models"
	"arkiv/internal/notify"
	"arkiv/internal/repository/sqlite"
)

var phonePattern = regexp.MustCompile(`^[0-9]+$`)

// CheckoutService handles the checkout/return transitions of the folder
// lifecycle.
type CheckoutService struct {
	folders   *sqlite.FolderRepository
	checkouts *sqlite.CheckoutRepository
	logs      *sqlite.LogRepository
	txManager *sqlite.TransactionManager
	notifier  Notifier
	logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	folders *sqlite.FolderRepository,
	checkouts *sqlite.CheckoutRepository,
	logs *sqlite.LogRepository,
	txManager *sqlite.TransactionManager,
	notifier Notifier,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		folders:   folders,
		checkouts: checkouts,
		logs:      logs,
		txManager: txManager,
		notifier:  notifier,
		logger:    logger,
	}
}

// Checkout lends an archived folder to a person: Archived -> CheckedOut.
func (s *CheckoutService) Checkout(ctx context.Context, folderID string, req *models.CreateCheckoutRequest) (*models.Checkout, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	folder, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	switch folder.Status {
	case models.FolderStatusCheckedOut:
		return nil, &domain.ConflictError{
			Message:      "folder already has an open checkout",
			ResourceType: "checkout",
			ResourceID:   folderID,
		}
	case models.FolderStatusDisposed:
		return nil, &domain.ConflictError{
			Message:      "disposed folders cannot be checked out",
			ResourceType: "folder",
			ResourceID:   folderID,
		}
	}

	now := time.Now().UTC()
	checkout := &models.Checkout{
		ID:                uuid.New().String(),
		FolderID:          folderID,
		Type:              req.Type,
		Description:       req.Description,
		PersonName:        req.PersonName,
		PersonSurname:     req.PersonSurname,
		Phone:             req.Phone,
		Reason:            req.Reason,
		CheckoutDate:      req.CheckoutDate,
		PlannedReturnDate: req.PlannedReturnDate,
		Status:            models.CheckoutStatusCheckedOut,
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		// The partial unique index backstops the status check under
		// concurrent requests.
		if err := s.checkouts.Create(ctx, checkout); err != nil {
			return err
		}
		if err := s.folders.UpdateStatus(ctx, folderID, models.FolderStatusCheckedOut, now); err != nil {
			return err
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeCheckout, &folderID,
			fmt.Sprintf("folder %s checked out to %s %s", folder.FileCode, req.PersonName, req.PersonSurname)))
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast(notify.EventCheckoutCreated, map[string]any{
		"folder_id":   folderID,
		"checkout_id": checkout.ID,
	})

	s.logger.Info("folder checked out",
		"folder_id", folderID,
		"checkout_id", checkout.ID,
		"type", checkout.Type,
	)
	return checkout, nil
}

// Return closes the folder's open checkout: CheckedOut -> Archived.
func (s *CheckoutService) Return(ctx context.Context, folderID string) (*models.Checkout, error) {
	checkout, err := s.checkouts.GetOpenByFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.checkouts.MarkReturned(ctx, checkout.ID, now); err != nil {
			return err
		}
		if err := s.folders.UpdateStatus(ctx, folderID, models.FolderStatusArchived, now); err != nil {
			return err
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeReturn, &folderID,
			fmt.Sprintf("folder returned by %s %s", checkout.PersonName, checkout.PersonSurname)))
	})
	if err != nil {
		return nil, err
	}

	checkout.Status = models.CheckoutStatusReturned
	checkout.ActualReturnDate = &now

	s.notifier.Broadcast(notify.EventCheckoutUpdated, map[string]any{
		"folder_id":   folderID,
		"checkout_id": checkout.ID,
	})

	s.logger.Info("folder returned", "folder_id", folderID, "checkout_id", checkout.ID)
	return checkout, nil
}

// List returns checkouts matching the filter.
func (s *CheckoutService) List(ctx context.Context, filter *models.CheckoutFilter) ([]models.Checkout, error) {
	return s.checkouts.List(ctx, filter)
}

func validateCheckoutRequest(req *models.CreateCheckoutRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Type,
			validation.Required,
			validation.In(models.CheckoutTypeFull, models.CheckoutTypePartial),
		),
		// Partial checkouts must say which documents were removed.
		validation.Field(&req.Description,
			validation.When(req.Type == models.CheckoutTypePartial,
				validation.Required,
			),
			validation.Length(0, config.MaxDetailsLength),
		),
		validation.Field(&req.PersonName,
			validation.Required,
			validation.Length(1, config.MaxPersonNameLength),
		),
		validation.Field(&req.PersonSurname,
			validation.Required,
			validation.Length(1, config.MaxPersonNameLength),
		),
		validation.Field(&req.Phone,
			validation.Match(phonePattern).Error("must contain digits only"),
		),
		validation.Field(&req.Reason, validation.Length(0, config.MaxDetailsLength)),
		validation.Field(&req.CheckoutDate, validation.Required),
		validation.Field(&req.PlannedReturnDate,
			validation.Required,
			validation.By(func(any) error {
				if req.PlannedReturnDate.IsZero() || req.CheckoutDate.IsZero() {
					return nil // Required already covers these
				}
				if req.PlannedReturnDate.Before(req.CheckoutDate) {
					return errors.New("must not be before the checkout date")
				}
				return nil
			}),
		),
	)
	if err != nil {
		return asValidationError(err)
	}
	return nil
}
