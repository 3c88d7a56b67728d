package ports

import (
	"context"

	"placementcms/domain/core"
	"placementcms/domain/placement"
	"placementcms/domain/roster"
)

// StudentRepository defines the interface for student data operations
type StudentRepository interface {
	// Create persists a single student; duplicates return core.ErrDuplicateStudent
	Create(ctx context.Context, record roster.StudentRecord) (*placement.Student, error)

	// BulkCreate persists every record or none of them
	BulkCreate(ctx context.Context, records []roster.StudentRecord) ([]placement.Student, error)

	// GetByID returns core.ErrStudentNotFound when no row matches
	GetByID(ctx context.Context, id core.ID) (*placement.Student, error)

	// List returns all students ordered by creation time
	List(ctx context.Context) ([]placement.Student, error)

	Update(ctx context.Context, id core.ID, record roster.StudentRecord) (*placement.Student, error)
	Delete(ctx context.Context, id core.ID) error
	Count(ctx context.Context) (int, error)
}
