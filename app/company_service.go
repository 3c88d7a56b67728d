package app

import (
	"context"
	"strings"

	"placementcms/domain/core"
	"placementcms/domain/placement"
	"placementcms/internal"
	"placementcms/ports"

	"github.com/go-playground/validator/v10"
)

// CompanyService manages recruiting companies
type CompanyService struct {
	repo     ports.CompanyRepository
	validate *validator.Validate
	logger   *internal.Logger
}

// NewCompanyService creates a company service
func NewCompanyService(repo ports.CompanyRepository, logger *internal.Logger) *CompanyService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &CompanyService{repo: repo, validate: newValidator(), logger: logger}
}

// Create validates and stores a company
func (s *CompanyService) Create(ctx context.Context, company *placement.Company) error {
	company.Name = strings.TrimSpace(company.Name)
	if err := s.validate.Struct(company); err != nil {
		return validationError(err)
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return mapRepoError(err, "failed to create company")
	}
	s.logger.Info("[CompanyService] created company %s (%s)", company.ID, company.Name)
	return nil
}

// Get returns one company
func (s *CompanyService) Get(ctx context.Context, id core.ID) (*placement.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get company")
	}
	return company, nil
}

// List returns companies whose name contains search
func (s *CompanyService) List(ctx context.Context, search string) ([]placement.Company, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, "failed to list companies")
	}
	return placement.FilterCompanies(all, search), nil
}

// Update validates and replaces a company
func (s *CompanyService) Update(ctx context.Context, company *placement.Company) error {
	company.Name = strings.TrimSpace(company.Name)
	if err := s.validate.Struct(company); err != nil {
		return validationError(err)
	}
	if err := s.repo.Update(ctx, company); err != nil {
		return mapRepoError(err, "failed to update company")
	}
	return nil
}

// Delete removes a company
func (s *CompanyService) Delete(ctx context.Context, id core.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "failed to delete company")
	}
	return nil
}
