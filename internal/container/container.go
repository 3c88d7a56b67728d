package container

import (
	"context"
	"fmt"

	"placementcms/adapters/excel"
	"placementcms/adapters/postgres"
	"placementcms/app"
	"placementcms/internal"
	"placementcms/internal/config"
	"placementcms/internal/roster"
	"placementcms/ports"
	"placementcms/ui"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	StudentRepo   ports.StudentRepository
	CompanyRepo   ports.CompanyRepository
	PlacementRepo ports.PlacementRepository
	ImportLogRepo ports.ImportLogRepository

	// Roster pipeline
	Ingestor *roster.Ingestor

	// Services
	Students   *app.StudentService
	Companies  *app.CompanyService
	Placements *app.PlacementService
	Dashboard  *app.DashboardService
	Roster     *app.RosterService
}

// New creates a new dependency injection container. The roster pipeline is
// ready immediately; services that need storage wait for InitWithDatabase.
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}

	ingestor, err := NewIngestor(cfg.Roster, logger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Ingestor: ingestor,
	}, nil
}

// NewIngestor builds the roster pipeline from configuration; it needs no database
func NewIngestor(cfg config.RosterConfig, logger *internal.Logger) (*roster.Ingestor, error) {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	accept, err := roster.ParseAcceptPolicy(cfg.AcceptPolicy)
	if err != nil {
		return nil, fmt.Errorf("roster accept policy: %w", err)
	}
	duplicate, err := roster.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return nil, fmt.Errorf("roster duplicate policy: %w", err)
	}

	fields := roster.DefaultFieldMap()
	if cfg.AliasesFile != "" {
		aliases, err := config.LoadAliases(cfg.AliasesFile)
		if err != nil {
			return nil, err
		}
		if fields, err = fields.WithAliases(aliases); err != nil {
			return nil, fmt.Errorf("roster aliases: %w", err)
		}
		logger.Info("[Container] loaded %d header aliases from %s", len(aliases), cfg.AliasesFile)
	}

	if cfg.MaxRows < 0 {
		return nil, fmt.Errorf("roster max rows must not be negative: %d", cfg.MaxRows)
	}

	return roster.NewIngestor(
		excel.NewDecoder(excel.DefaultDecoderConfig()),
		roster.WithFieldMap(fields),
		roster.WithDuplicatePolicy(duplicate),
		roster.WithAcceptPolicy(accept),
		roster.WithMaxRows(cfg.MaxRows),
		roster.WithLogger(logger),
	), nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}
	c.DB = db

	c.initRepositories()
	c.initServices()

	c.Logger.Info("[Container] initialized (commit on upload: %t)", c.Roster.CommitsOnUpload())
	return nil
}

// initRepositories initializes data access repositories
func (c *Container) initRepositories() {
	c.StudentRepo = postgres.NewStudentRepository(c.DB)
	c.CompanyRepo = postgres.NewCompanyRepository(c.DB)
	c.PlacementRepo = postgres.NewPlacementRepository(c.DB)
	c.ImportLogRepo = postgres.NewImportLogRepository(c.DB)
}

func (c *Container) initServices() {
	c.Students = app.NewStudentService(c.StudentRepo, c.Logger)
	c.Companies = app.NewCompanyService(c.CompanyRepo, c.Logger)
	c.Placements = app.NewPlacementService(c.PlacementRepo, c.StudentRepo, c.CompanyRepo, c.Logger)
	c.Dashboard = app.NewDashboardService(c.StudentRepo, c.CompanyRepo, c.PlacementRepo, c.Config.Stats.EligibilityThreshold, c.Logger)
	c.Roster = app.NewRosterService(c.Ingestor, c.Students, c.ImportLogRepo, c.Config.Roster.CommitOnUpload, c.Logger)
}

// Services returns the set the HTTP server is built from
func (c *Container) Services() ui.Services {
	return ui.Services{
		Students:   c.Students,
		Companies:  c.Companies,
		Placements: c.Placements,
		Dashboard:  c.Dashboard,
		Roster:     c.Roster,
	}
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	_ = c.Logger.Sync()
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
