package app

import (
	"context"
	"strings"

	"placementcms/domain/placement"
	"placementcms/internal"
	apperrors "placementcms/internal/errors"
	"placementcms/ports"
)

// PlacementService records offers made to students
type PlacementService struct {
	placements ports.PlacementRepository
	students   ports.StudentRepository
	companies  ports.CompanyRepository
	logger     *internal.Logger
}

// NewPlacementService creates a placement service
func NewPlacementService(placements ports.PlacementRepository, students ports.StudentRepository, companies ports.CompanyRepository, logger *internal.Logger) *PlacementService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &PlacementService{placements: placements, students: students, companies: companies, logger: logger}
}

// Create stores a placement after checking the student and company exist
func (s *PlacementService) Create(ctx context.Context, p *placement.Placement) error {
	p.Position = strings.TrimSpace(p.Position)
	if p.Position == "" {
		return apperrors.ValidationError("position is required")
	}
	if p.Package < 0 {
		return apperrors.ValidationError("package must not be negative")
	}
	if p.PlacementDate.IsZero() {
		return apperrors.ValidationError("placementDate is required")
	}
	if p.Status == "" {
		p.Status = placement.PlacementOffered
	}
	if !p.Status.Valid() {
		return apperrors.ValidationError("status must be offered, accepted or declined")
	}

	if _, err := s.students.GetByID(ctx, p.StudentID); err != nil {
		return mapRepoError(err, "failed to check student")
	}
	if _, err := s.companies.GetByID(ctx, p.CompanyID); err != nil {
		return mapRepoError(err, "failed to check company")
	}

	if err := s.placements.Create(ctx, p); err != nil {
		return mapRepoError(err, "failed to create placement")
	}
	s.logger.Info("[PlacementService] student %s placed at %s as %s", p.StudentID, p.CompanyID, p.Position)
	return nil
}

// List returns every placement, newest first
func (s *PlacementService) List(ctx context.Context) ([]placement.Placement, error) {
	list, err := s.placements.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, "failed to list placements")
	}
	return list, nil
}
