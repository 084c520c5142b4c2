package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"arkiv/internal/database"
	"arkiv/internal/domain"
	"arkiv/internal/models"
)

const checkoutColumns = `id, folder_id, type, description, person_name,
	person_surname, phone, reason, checkout_date, planned_return_date,
	actual_return_date, status`

// CheckoutRepository persists folder loans.
type CheckoutRepository struct {
	handle *database.Handle
	logger *slog.Logger
}

// NewCheckoutRepository creates a new checkout repository.
func NewCheckoutRepository(cfg *RepositoryConfig) *CheckoutRepository {
	return &CheckoutRepository{handle: cfg.Handle, logger: cfg.Logger}
}

// Create inserts a new checkout row. The partial unique index on open
// checkouts turns a second open checkout into a unique violation, which is
// surfaced as a conflict.
func (r *CheckoutRepository) Create(ctx context.Context, c *models.Checkout) error {
	_, err := Executor(ctx, r.handle).ExecContext(ctx,
		`INSERT INTO checkouts (`+checkoutColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FolderID, c.Type, c.Description, c.PersonName,
		c.PersonSurname, c.Phone, c.Reason, c.CheckoutDate, c.PlannedReturnDate,
		c.ActualReturnDate, c.Status,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder %s already has an open checkout", c.FolderID),
				ResourceType: "checkout",
				ResourceID:   c.FolderID,
			}
		}
		if IsForeignKeyViolation(err) {
			return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", c.FolderID)}
		}
		return &domain.StorageError{Message: "creating checkout", Err: err}
	}
	return nil
}

// GetByID returns a checkout by ID.
func (r *CheckoutRepository) GetByID(ctx context.Context, id string) (*models.Checkout, error) {
	row := Executor(ctx, r.handle).QueryRowContext(ctx,
		`SELECT `+checkoutColumns+` FROM checkouts WHERE id = ?`, id,
	)
	c, err := scanCheckout(row)
	if IsNoRows(err) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("checkout %s not found", id)}
	}
	if err != nil {
		return nil, &domain.StorageError{Message: "getting checkout", Err: err}
	}
	return c, nil
}

// GetOpenByFolder returns the folder's open checkout, or a NotFoundError.
func (r *CheckoutRepository) GetOpenByFolder(ctx context.Context, folderID string) (*models.Checkout, error) {
	row := Executor(ctx, r.handle).QueryRowContext(ctx,
		`SELECT `+checkoutColumns+` FROM checkouts
		 WHERE folder_id = ? AND status = ?`,
		folderID, models.CheckoutStatusCheckedOut,
	)
	c, err := scanCheckout(row)
	if IsNoRows(err) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("no open checkout for folder %s", folderID)}
	}
	if err != nil {
		return nil, &domain.StorageError{Message: "getting open checkout", Err: err}
	}
	return c, nil
}

// List returns checkouts matching the filter, newest first.
func (r *CheckoutRepository) List(ctx context.Context, filter *models.CheckoutFilter) ([]models.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts`
	var clauses []string
	var args []any

	if filter != nil {
		if filter.FolderID != "" {
			clauses = append(clauses, "folder_id = ?")
			args = append(args, filter.FolderID)
		}
		if filter.Status != "" {
			clauses = append(clauses, "status = ?")
			args = append(args, filter.Status)
		}
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY checkout_date DESC"

	rows, err := Executor(ctx, r.handle).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Message: "listing checkouts", Err: err}
	}
	defer rows.Close()

	var checkouts []models.Checkout
	for rows.Next() {
		c, err := scanCheckout(rows)
		if err != nil {
			return nil, &domain.StorageError{Message: "scanning checkout", Err: err}
		}
		checkouts = append(checkouts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Message: "listing checkouts", Err: err}
	}
	return checkouts, nil
}

// CountOpen returns open checkout counts: total and overdue as of now.
func (r *CheckoutRepository) CountOpen(ctx context.Context, now time.Time) (open, overdue int, err error) {
	err = Executor(ctx, r.handle).QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN planned_return_date < ? THEN 1 ELSE 0 END), 0)
		 FROM checkouts WHERE status = ?`,
		now, models.CheckoutStatusCheckedOut,
	).Scan(&open, &overdue)
	if err != nil {
		return 0, 0, &domain.StorageError{Message: "counting checkouts", Err: err}
	}
	return open, overdue, nil
}

// MarkReturned closes a checkout.
func (r *CheckoutRepository) MarkReturned(ctx context.Context, id string, returnedAt time.Time) error {
	result, err := Executor(ctx, r.handle).ExecContext(ctx,
		`UPDATE checkouts SET status = ?, actual_return_date = ?
		 WHERE id = ? AND status = ?`,
		models.CheckoutStatusReturned, returnedAt, id, models.CheckoutStatusCheckedOut,
	)
	if err != nil {
		return &domain.StorageError{Message: "returning checkout", Err: err}
	}
	return requireRowAffected(result, "open checkout", id)
}

func scanCheckout(s scanner) (*models.Checkout, error) {
	var c models.Checkout
	var actualReturn sql.NullTime

	err := s.Scan(
		&c.ID, &c.FolderID, &c.Type, &c.Description, &c.PersonName,
		&c.PersonSurname, &c.Phone, &c.Reason, &c.CheckoutDate, &c.PlannedReturnDate,
		&actualReturn, &c.Status,
	)
	if err != nil {
		return nil, err
	}
	if actualReturn.Valid {
		c.ActualReturnDate = &actualReturn.Time
	}
	return &c, nil
}
