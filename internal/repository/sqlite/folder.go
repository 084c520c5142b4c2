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

const folderColumns = `id, file_code, subject, category, department_id,
	retention_code, retention_period, file_year, file_count, folder_type,
	storage_type, unit, face, section, shelf, stand, stand_shelf,
	status, pdf_path, excel_path, notes, created_at, updated_at`

// FolderRepository persists folders.
type FolderRepository struct {
	handle *database.Handle
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(cfg *RepositoryConfig) *FolderRepository {
	return &FolderRepository{handle: cfg.Handle, logger: cfg.Logger}
}

// Create inserts a new folder row.
func (r *FolderRepository) Create(ctx context.Context, f *models.Folder) error {
	_, err := Executor(ctx, r.handle).ExecContext(ctx,
		`INSERT INTO folders (`+folderColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.FileCode, f.Subject, f.Category, f.DepartmentID,
		f.RetentionCode, f.RetentionPeriod, f.FileYear, f.FileCount, f.FolderType,
		f.StorageType, f.Location.Unit, f.Location.Face, f.Location.Section,
		f.Location.Shelf, f.Location.Stand, f.Location.StandShelf,
		f.Status, f.PDFPath, f.ExcelPath, f.Notes, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return &domain.NotFoundError{Message: fmt.Sprintf("department %s not found", f.DepartmentID)}
		}
		return &domain.StorageError{Message: "creating folder", Err: err}
	}
	return nil
}

// GetByID returns a folder by ID.
func (r *FolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	row := Executor(ctx, r.handle).QueryRowContext(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE id = ?`, id,
	)
	f, err := scanFolder(row)
	if IsNoRows(err) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}
	if err != nil {
		return nil, &domain.StorageError{Message: "getting folder", Err: err}
	}
	return f, nil
}

// List returns folders matching the filter, newest first.
func (r *FolderRepository) List(ctx context.Context, filter *models.FolderFilter) ([]models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders`
	var clauses []string
	var args []any

	if filter != nil {
		if filter.Status != "" {
			clauses = append(clauses, "status = ?")
			args = append(args, filter.Status)
		}
		if filter.Category != "" {
			clauses = append(clauses, "category = ?")
			args = append(args, filter.Category)
		}
		if filter.DepartmentID != "" {
			clauses = append(clauses, "department_id = ?")
			args = append(args, filter.DepartmentID)
		}
		if filter.FileYear != 0 {
			clauses = append(clauses, "file_year = ?")
			args = append(args, filter.FileYear)
		}
		if filter.StorageType != "" {
			clauses = append(clauses, "storage_type = ?")
			args = append(args, filter.StorageType)
		}
		if filter.Search != "" {
			clauses = append(clauses, "(file_code LIKE ? OR subject LIKE ?)")
			pattern := "%" + filter.Search + "%"
			args = append(args, pattern, pattern)
		}
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := Executor(ctx, r.handle).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Message: "listing folders", Err: err}
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, &domain.StorageError{Message: "scanning folder", Err: err}
		}
		folders = append(folders, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Message: "listing folders", Err: err}
	}
	return folders, nil
}

// Update rewrites a folder row and bumps updated_at.
func (r *FolderRepository) Update(ctx context.Context, f *models.Folder) error {
	result, err := Executor(ctx, r.handle).ExecContext(ctx,
		`UPDATE folders SET
			file_code = ?, subject = ?, category = ?, department_id = ?,
			retention_code = ?, retention_period = ?, file_year = ?, file_count = ?,
			folder_type = ?, storage_type = ?, unit = ?, face = ?, section = ?,
			shelf = ?, stand = ?, stand_shelf = ?, status = ?, pdf_path = ?,
			excel_path = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		f.FileCode, f.Subject, f.Category, f.DepartmentID,
		f.RetentionCode, f.RetentionPeriod, f.FileYear, f.FileCount,
		f.FolderType, f.StorageType, f.Location.Unit, f.Location.Face, f.Location.Section,
		f.Location.Shelf, f.Location.Stand, f.Location.StandShelf, f.Status, f.PDFPath,
		f.ExcelPath, f.Notes, f.UpdatedAt,
		f.ID,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return &domain.NotFoundError{Message: fmt.Sprintf("department %s not found", f.DepartmentID)}
		}
		return &domain.StorageError{Message: "updating folder", Err: err}
	}
	return requireRowAffected(result, "folder", f.ID)
}

// UpdateStatus flips only the folder status and updated_at.
func (r *FolderRepository) UpdateStatus(ctx context.Context, id string, status models.FolderStatus, updatedAt time.Time) error {
	result, err := Executor(ctx, r.handle).ExecContext(ctx,
		`UPDATE folders SET status = ?, updated_at = ? WHERE id = ?`,
		status, updatedAt, id,
	)
	if err != nil {
		return &domain.StorageError{Message: "updating folder status", Err: err}
	}
	return requireRowAffected(result, "folder", id)
}

// SetAttachmentPath stores the path of an uploaded attachment.
func (r *FolderRepository) SetAttachmentPath(ctx context.Context, id, column, path string, updatedAt time.Time) error {
	if column != "pdf_path" && column != "excel_path" {
		return fmt.Errorf("invalid attachment column %q", column)
	}
	result, err := Executor(ctx, r.handle).ExecContext(ctx,
		`UPDATE folders SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		path, updatedAt, id,
	)
	if err != nil {
		return &domain.StorageError{Message: "setting attachment path", Err: err}
	}
	return requireRowAffected(result, "folder", id)
}

// Delete removes a folder row. Checkout and disposal rows cascade.
func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	result, err := Executor(ctx, r.handle).ExecContext(ctx,
		`DELETE FROM folders WHERE id = ?`, id,
	)
	if err != nil {
		return &domain.StorageError{Message: "deleting folder", Err: err}
	}
	return requireRowAffected(result, "folder", id)
}

// CountByColumn returns folder counts grouped by the given column.
func (r *FolderRepository) CountByColumn(ctx context.Context, column string) (map[string]int, error) {
	if column != "status" && column != "category" {
		return nil, fmt.Errorf("invalid group column %q", column)
	}
	rows, err := Executor(ctx, r.handle).QueryContext(ctx,
		`SELECT `+column+`, COUNT(*) FROM folders GROUP BY `+column,
	)
	if err != nil {
		return nil, &domain.StorageError{Message: "counting folders", Err: err}
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, &domain.StorageError{Message: "scanning folder counts", Err: err}
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFolder(s scanner) (*models.Folder, error) {
	var f models.Folder
	var unit, face, section, shelf, stand, standShelf sql.NullInt64
	var pdfPath, excelPath sql.NullString

	err := s.Scan(
		&f.ID, &f.FileCode, &f.Subject, &f.Category, &f.DepartmentID,
		&f.RetentionCode, &f.RetentionPeriod, &f.FileYear, &f.FileCount, &f.FolderType,
		&f.StorageType, &unit, &face, &section, &shelf, &stand, &standShelf,
		&f.Status, &pdfPath, &excelPath, &f.Notes, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	f.Location.Unit = nullableInt(unit)
	f.Location.Face = nullableInt(face)
	f.Location.Section = nullableInt(section)
	f.Location.Shelf = nullableInt(shelf)
	f.Location.Stand = nullableInt(stand)
	f.Location.StandShelf = nullableInt(standShelf)
	if pdfPath.Valid {
		f.PDFPath = &pdfPath.String
	}
	if excelPath.Valid {
		f.ExcelPath = &excelPath.String
	}
	return &f, nil
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func requireRowAffected(result sql.Result, resource, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return &domain.StorageError{Message: "checking affected rows", Err: err}
	}
	if n == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found", resource, id)}
	}
	return nil
}
