package postgres

import (
	"context"
	"time"

	"placementcms/domain/core"
	"placementcms/domain/placement"
	"placementcms/ports"

	"github.com/jmoiron/sqlx"
)

// PlacementRepositoryImpl implements PlacementRepository for PostgreSQL
type PlacementRepositoryImpl struct {
	db *sqlx.DB
}

// NewPlacementRepository creates a new PostgreSQL placement repository
func NewPlacementRepository(db *sqlx.DB) ports.PlacementRepository {
	return &PlacementRepositoryImpl{db: db}
}

// Create inserts a placement and assigns its ID
func (r *PlacementRepositoryImpl) Create(ctx context.Context, p *placement.Placement) error {
	p.ID = core.NewID()
	p.CreatedAt = time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO placements (id, student_id, company_id, position, package, placement_date, status, created_at)
		VALUES (:id, :student_id, :company_id, :position, :package, :placement_date, :status, :created_at)
	`, p)
	if isUniqueViolation(err) {
		return core.ErrDuplicatePlacement
	}
	return err
}

// List returns placements, newest first
func (r *PlacementRepositoryImpl) List(ctx context.Context) ([]placement.Placement, error) {
	placements := []placement.Placement{}
	err := r.db.SelectContext(ctx, &placements, `
		SELECT id, student_id, company_id, position, package, placement_date, status, created_at
		FROM placements
		ORDER BY placement_date DESC, created_at DESC
	`)
	return placements, err
}

// Count returns the number of placements
func (r *PlacementRepositoryImpl) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM placements`)
	return n, err
}

// CountPlaced counts distinct students with an accepted offer
func (r *PlacementRepositoryImpl) CountPlaced(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(DISTINCT student_id) FROM placements WHERE status = $1`, placement.PlacementAccepted)
	return n, err
}
