package service

import (
	"context"
	"time"

	"arkiv/internal/models"
	"arkiv/internal/repository/sqlite"
	"arkiv/internal/retention"
)

// DashboardService aggregates folder, checkout and disposal counts for the
// overview screen.
type DashboardService struct {
	folders   *sqlite.FolderRepository
	checkouts *sqlite.CheckoutRepository
	disposals *sqlite.DisposalRepository
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	folders *sqlite.FolderRepository,
	checkouts *sqlite.CheckoutRepository,
	disposals *sqlite.DisposalRepository,
) *DashboardService {
	return &DashboardService{
		folders:   folders,
		checkouts: checkouts,
		disposals: disposals,
	}
}

// Stats computes the aggregate counts in one pass.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	byStatus, err := s.folders.CountByColumn(ctx, "status")
	if err != nil {
		return nil, err
	}
	byCategory, err := s.folders.CountByColumn(ctx, "category")
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	now := time.Now().UTC()
	open, overdue, err := s.checkouts.CountOpen(ctx, now)
	if err != nil {
		return nil, err
	}

	disposed, err := s.disposals.Count(ctx)
	if err != nil {
		return nil, err
	}

	// Eligibility depends on the retention code of each folder, so the
	// count cannot be a plain GROUP BY.
	archived, err := s.folders.List(ctx, &models.FolderFilter{Status: models.FolderStatusArchived})
	if err != nil {
		return nil, err
	}
	eligible := 0
	for _, f := range archived {
		if retention.Eligibility(f.FileYear, f.RetentionPeriod, now.Year()).Eligible {
			eligible++
		}
	}

	return &models.DashboardStats{
		TotalFolders:        total,
		ByStatus:            byStatus,
		ByCategory:          byCategory,
		OpenCheckouts:       open,
		OverdueCheckouts:    overdue,
		EligibleForDisposal: eligible,
		Disposed:            disposed,
	}, nil
}
