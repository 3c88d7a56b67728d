package migration

import (
	"context"

	"placementcms/internal"
	"placementcms/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
	logger  *internal.Logger
}

// NewRunner creates a new migration runner
func NewRunner(logger *internal.Logger) *MigrationRunner {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &MigrationRunner{
		version: "1.0.0",
		logger:  logger,
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	steps := []struct {
		name string
		fn   func(context.Context, *sqlx.DB) error
	}{
		{"students table", r.createStudentsTable},
		{"companies table", r.createCompaniesTable},
		{"placements table", r.createPlacementsTable},
		{"roster_imports table", r.createRosterImportsTable},
		{"indexes", r.createIndexes},
	}

	for _, step := range steps {
		if err := step.fn(ctx, db); err != nil {
			return errors.WithCode(errors.CodeDatabaseError, errors.Wrapf(err, "failed to create %s", step.name))
		}
	}

	r.logger.Info("[Migration] schema version %s applied", r.version)
	return nil
}

func (r *MigrationRunner) createStudentsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			roll_no VARCHAR(100) UNIQUE NOT NULL,
			branch VARCHAR(100) NOT NULL,
			btech_percentage DOUBLE PRECISION NOT NULL,
			status VARCHAR(50) NOT NULL,
			mobile VARCHAR(50),
			gender VARCHAR(50),
			assigned_tpo VARCHAR(255),
			year_of_passout VARCHAR(20),
			graduation_percentage DOUBLE PRECISION,
			college_name VARCHAR(255),
			inter_diploma_percentage DOUBLE PRECISION,
			previous_college_name VARCHAR(255),
			ssc_percentage DOUBLE PRECISION,
			school_name VARCHAR(255),
			pan_card_no VARCHAR(20),
			aadhar_card_no VARCHAR(20),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createCompaniesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			industry VARCHAR(255) NOT NULL DEFAULT '',
			location VARCHAR(255) NOT NULL DEFAULT '',
			website VARCHAR(255) NOT NULL DEFAULT '',
			contact_person VARCHAR(255) NOT NULL DEFAULT '',
			contact_email VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createPlacementsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS placements (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			position VARCHAR(255) NOT NULL,
			package DOUBLE PRECISION NOT NULL DEFAULT 0,
			placement_date DATE NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'offered',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (student_id, company_id)
		)
	`)
	return err
}

func (r *MigrationRunner) createRosterImportsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS roster_imports (
			id UUID PRIMARY KEY,
			filename VARCHAR(255) NOT NULL,
			checksum VARCHAR(32) NOT NULL,
			outcome VARCHAR(20) NOT NULL,
			accepted INTEGER NOT NULL DEFAULT 0,
			rejected INTEGER NOT NULL DEFAULT 0,
			committed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_students_branch ON students(branch)",
		"CREATE INDEX IF NOT EXISTS idx_students_status ON students(status)",
		"CREATE INDEX IF NOT EXISTS idx_students_created_at ON students(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_placements_student_id ON placements(student_id)",
		"CREATE INDEX IF NOT EXISTS idx_placements_company_id ON placements(company_id)",
		"CREATE INDEX IF NOT EXISTS idx_roster_imports_created_at ON roster_imports(created_at DESC)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			r.logger.Warn("[Migration] failed to create index: %v", err)
		}
	}
	return nil
}
