package app

import (
	"context"

	"placementcms/domain/core"
	"placementcms/domain/placement"
	"placementcms/domain/roster"
	"placementcms/internal"
	apperrors "placementcms/internal/errors"
	"placementcms/ports"

	"github.com/go-playground/validator/v10"
)

// ListOptions drives the student listing: filter, then sort, then paginate
type ListOptions struct {
	Filter     placement.StudentFilter
	Sort       placement.SortColumn
	Descending bool
	Page       int
	PerPage    int
}

// StudentPage is one page of a student listing
type StudentPage struct {
	Items   []placement.Student `json:"items"`
	Total   int                 `json:"total"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"perPage"`
	Pages   int                 `json:"pages"`
}

// StudentService manages student records
type StudentService struct {
	repo     ports.StudentRepository
	validate *validator.Validate
	logger   *internal.Logger
}

// NewStudentService creates a student service
func NewStudentService(repo ports.StudentRepository, logger *internal.Logger) *StudentService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &StudentService{
		repo:     repo,
		validate: newValidator(),
		logger:   logger,
	}
}

// Create validates and stores one student
func (s *StudentService) Create(ctx context.Context, record roster.StudentRecord) (*placement.Student, error) {
	if err := s.check(record); err != nil {
		return nil, err
	}
	student, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepoError(err, "failed to create student")
	}
	s.logger.Info("[StudentService] created student %s (%s)", student.ID, student.RollNo)
	return student, nil
}

// Get returns one student
func (s *StudentService) Get(ctx context.Context, id core.ID) (*placement.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get student")
	}
	return student, nil
}

// List filters, sorts and paginates every stored student
func (s *StudentService) List(ctx context.Context, opts ListOptions) (*StudentPage, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeDatabaseError, apperrors.Wrap(err, "failed to list students"))
	}

	matched := placement.FilterStudents(all, opts.Filter)
	sortBy := opts.Sort
	if sortBy == "" {
		sortBy = placement.SortByName
	}
	placement.SortStudents(matched, sortBy, opts.Descending)

	page := opts.Page
	if page < 1 {
		page = 1
	}
	items, pages := placement.Paginate(matched, page, opts.PerPage)
	return &StudentPage{
		Items:   items,
		Total:   len(matched),
		Page:    page,
		PerPage: opts.PerPage,
		Pages:   pages,
	}, nil
}

// Update validates and replaces a student
func (s *StudentService) Update(ctx context.Context, id core.ID, record roster.StudentRecord) (*placement.Student, error) {
	if err := s.check(record); err != nil {
		return nil, err
	}
	student, err := s.repo.Update(ctx, id, record)
	if err != nil {
		return nil, mapRepoError(err, "failed to update student")
	}
	return student, nil
}

// Delete removes a student
func (s *StudentService) Delete(ctx context.Context, id core.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "failed to delete student")
	}
	s.logger.Info("[StudentService] deleted student %s", id)
	return nil
}

// BulkCreate validates every record, then stores all of them or none
func (s *StudentService) BulkCreate(ctx context.Context, records []roster.StudentRecord) ([]placement.Student, error) {
	if len(records) == 0 {
		return []placement.Student{}, nil
	}
	for i, record := range records {
		if err := s.check(record); err != nil {
			return nil, apperrors.Wrapf(err, "record %d", i+1)
		}
	}

	students, err := s.repo.BulkCreate(ctx, records)
	if err != nil {
		return nil, mapRepoError(err, "failed to store students")
	}
	s.logger.Info("[StudentService] stored %d students", len(students))
	return students, nil
}

// Count returns the number of stored students
func (s *StudentService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *StudentService) check(record roster.StudentRecord) error {
	if err := s.validate.Struct(record); err != nil {
		return validationError(err)
	}
	if record.BtechPercentage < 0 {
		return apperrors.ValidationError("btechPercentage must not be negative")
	}
	return nil
}
