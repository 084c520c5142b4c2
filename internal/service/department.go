package service

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"arkiv/internal/config"
	"arkiv/internal/models"
	"arkiv/internal/repository/sqlite"
)

// DepartmentService manages the originating departments folders belong to.
type DepartmentService struct {
	departments *sqlite.DepartmentRepository
	logs        *sqlite.LogRepository
	txManager   *sqlite.TransactionManager
	logger      *slog.Logger
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(
	departments *sqlite.DepartmentRepository,
	logs *sqlite.LogRepository,
	txManager *sqlite.TransactionManager,
	logger *slog.Logger,
) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		logs:        logs,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create registers a new department.
func (s *DepartmentService) Create(ctx context.Context, req *models.CreateDepartmentRequest) (*models.Department, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxSubjectLength),
		),
	)
	if err != nil {
		return nil, asValidationError(err)
	}

	dept := &models.Department{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.departments.Create(ctx, dept); err != nil {
			return err
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeCreate, nil,
			"department created: "+dept.Name))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("department created", "department_id", dept.ID, "name", dept.Name)
	return dept, nil
}

// List returns all departments.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.departments.List(ctx)
}

// Delete removes a department. Fails with a conflict while folders still
// reference it.
func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.departments.Delete(ctx, id); err != nil {
			return err
		}
		return s.logs.Append(ctx, newLogEntry(models.LogTypeDelete, nil,
			"department deleted: "+dept.Name))
	})
	if err != nil {
		return err
	}

	s.logger.Info("department deleted", "department_id", id, "name", dept.Name)
	return nil
}
