package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"placementcms/domain/core"
	"placementcms/domain/placement"
	"placementcms/ports"

	"github.com/jmoiron/sqlx"
)

// CompanyRepositoryImpl implements CompanyRepository for PostgreSQL
type CompanyRepositoryImpl struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new PostgreSQL company repository
func NewCompanyRepository(db *sqlx.DB) ports.CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

// Create inserts a company and assigns its ID
func (r *CompanyRepositoryImpl) Create(ctx context.Context, company *placement.Company) error {
	company.ID = core.NewID()
	company.CreatedAt = time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO companies (id, name, industry, location, website, contact_person, contact_email, created_at)
		VALUES (:id, :name, :industry, :location, :website, :contact_person, :contact_email, :created_at)
	`, company)
	if isUniqueViolation(err) {
		return core.ErrDuplicateCompany
	}
	return err
}

// GetByID retrieves a company by ID
func (r *CompanyRepositoryImpl) GetByID(ctx context.Context, id core.ID) (*placement.Company, error) {
	var company placement.Company
	err := r.db.GetContext(ctx, &company, `
		SELECT id, name, industry, location, website, contact_person, contact_email, created_at
		FROM companies
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// List returns every company ordered by name
func (r *CompanyRepositoryImpl) List(ctx context.Context) ([]placement.Company, error) {
	companies := []placement.Company{}
	err := r.db.SelectContext(ctx, &companies, `
		SELECT id, name, industry, location, website, contact_person, contact_email, created_at
		FROM companies
		ORDER BY name ASC
	`)
	return companies, err
}

// Update replaces the mutable fields of a company
func (r *CompanyRepositoryImpl) Update(ctx context.Context, company *placement.Company) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE companies SET
			name = :name, industry = :industry, location = :location, website = :website,
			contact_person = :contact_person, contact_email = :contact_email
		WHERE id = :id
	`, company)
	if isUniqueViolation(err) {
		return core.ErrDuplicateCompany
	}
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrCompanyNotFound
	}
	return nil
}

// Delete removes a company and its placements
func (r *CompanyRepositoryImpl) Delete(ctx context.Context, id core.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrCompanyNotFound
	}
	return nil
}

// Count returns the number of companies
func (r *CompanyRepositoryImpl) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM companies`)
	return n, err
}
