package ports

import (
	"context"

	"placementcms/domain/roster"
)

// ImportLogRepository records roster uploads for the history view
type ImportLogRepository interface {
	Record(ctx context.Context, entry *roster.ImportLog) error
	ListRecent(ctx context.Context, limit int) ([]roster.ImportLog, error)
}
