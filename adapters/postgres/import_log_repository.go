package postgres

import (
	"context"
	"time"

	"placementcms/domain/core"
	"placementcms/domain/roster"
	"placementcms/ports"

	"github.com/jmoiron/sqlx"
)

// ImportLogRepositoryImpl implements ImportLogRepository for PostgreSQL
type ImportLogRepositoryImpl struct {
	db *sqlx.DB
}

// NewImportLogRepository creates a new PostgreSQL import log repository
func NewImportLogRepository(db *sqlx.DB) ports.ImportLogRepository {
	return &ImportLogRepositoryImpl{db: db}
}

// Record appends an entry to roster_imports
func (r *ImportLogRepositoryImpl) Record(ctx context.Context, entry *roster.ImportLog) error {
	if entry.ID == "" {
		entry.ID = core.NewID().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO roster_imports (id, filename, checksum, outcome, accepted, rejected, committed, created_at)
		VALUES (:id, :filename, :checksum, :outcome, :accepted, :rejected, :committed, :created_at)
	`, entry)
	return err
}

// ListRecent returns up to limit entries, newest first
func (r *ImportLogRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]roster.ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	entries := []roster.ImportLog{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, filename, checksum, outcome, accepted, rejected, committed, created_at
		FROM roster_imports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	return entries, err
}
