package ports

import (
	"context"

	"placementcms/domain/placement"
)

// PlacementRepository defines the interface for placement data operations
type PlacementRepository interface {
	Create(ctx context.Context, p *placement.Placement) error
	List(ctx context.Context) ([]placement.Placement, error)
	Count(ctx context.Context) (int, error)

	// CountPlaced counts distinct students holding an accepted offer
	CountPlaced(ctx context.Context) (int, error)
}
