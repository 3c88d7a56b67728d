package ports

import (
	"context"

	"placementcms/domain/core"
	"placementcms/domain/placement"
)

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *placement.Company) error
	GetByID(ctx context.Context, id core.ID) (*placement.Company, error)
	List(ctx context.Context) ([]placement.Company, error)
	Update(ctx context.Context, company *placement.Company) error
	Delete(ctx context.Context, id core.ID) error
	Count(ctx context.Context) (int, error)
}
