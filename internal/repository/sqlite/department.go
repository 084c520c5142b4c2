package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"arkiv/internal/database"
	"arkiv/internal/domain"
	"arkiv/internal/models"
)

// DepartmentRepository persists the department reference list.
type DepartmentRepository struct {
	handle *database.Handle
	logger *slog.Logger
}

// NewDepartmentRepository creates a new department repository.
func NewDepartmentRepository(cfg *RepositoryConfig) *DepartmentRepository {
	return &DepartmentRepository{handle: cfg.Handle, logger: cfg.Logger}
}

// Create inserts a department.
func (r *DepartmentRepository) Create(ctx context.Context, d *models.Department) error {
	_, err := Executor(ctx, r.handle).ExecContext(ctx,
		`INSERT INTO departments (id, name, active, created_at) VALUES (?, ?, ?, ?)`,
		d.ID, d.Name, d.Active, d.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a department named %q already exists", d.Name),
				ResourceType: "department",
				ResourceID:   d.ID,
			}
		}
		return &domain.StorageError{Message: "creating department", Err: err}
	}
	return nil
}

// GetByID returns a department by ID.
func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	var d models.Department
	err := Executor(ctx, r.handle).QueryRowContext(ctx,
		`SELECT id, name, active, created_at FROM departments WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &d.Active, &d.CreatedAt)
	if IsNoRows(err) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("department %s not found", id)}
	}
	if err != nil {
		return nil, &domain.StorageError{Message: "getting department", Err: err}
	}
	return &d, nil
}

// List returns all departments ordered by name.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	rows, err := Executor(ctx, r.handle).QueryContext(ctx,
		`SELECT id, name, active, created_at FROM departments ORDER BY name`,
	)
	if err != nil {
		return nil, &domain.StorageError{Message: "listing departments", Err: err}
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Active, &d.CreatedAt); err != nil {
			return nil, &domain.StorageError{Message: "scanning department", Err: err}
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Message: "listing departments", Err: err}
	}
	return departments, nil
}

// Delete removes a department. Departments still referenced by folders
// cannot be deleted; the foreign key surfaces as a conflict.
func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	result, err := Executor(ctx, r.handle).ExecContext(ctx,
		`DELETE FROM departments WHERE id = ?`, id,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return &domain.ConflictError{
				Message:      "department is referenced by existing folders",
				ResourceType: "department",
				ResourceID:   id,
			}
		}
		return &domain.StorageError{Message: "deleting department", Err: err}
	}
	return requireRowAffected(result, "department", id)
}
