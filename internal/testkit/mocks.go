package testkit

import (
	"context"

	"placementcms/domain/core"
	"placementcms/domain/placement"
	"placementcms/domain/roster"

	"github.com/stretchr/testify/mock"
)

// MockStudentRepository is a mock implementation of ports.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, record roster.StudentRecord) (*placement.Student, error) {
	args := m.Called(ctx, record)
	if s := args.Get(0); s != nil {
		return s.(*placement.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) BulkCreate(ctx context.Context, records []roster.StudentRecord) ([]placement.Student, error) {
	args := m.Called(ctx, records)
	if s := args.Get(0); s != nil {
		return s.([]placement.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id core.ID) (*placement.Student, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*placement.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context) ([]placement.Student, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]placement.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, id core.ID, record roster.StudentRecord) (*placement.Student, error) {
	args := m.Called(ctx, id, record)
	if s := args.Get(0); s != nil {
		return s.(*placement.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id core.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockCompanyRepository is a mock implementation of ports.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *placement.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id core.ID) (*placement.Company, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*placement.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompanyRepository) List(ctx context.Context) ([]placement.Company, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]placement.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *placement.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id core.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockPlacementRepository is a mock implementation of ports.PlacementRepository
type MockPlacementRepository struct {
	mock.Mock
}

func (m *MockPlacementRepository) Create(ctx context.Context, p *placement.Placement) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlacementRepository) List(ctx context.Context) ([]placement.Placement, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]placement.Placement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlacementRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPlacementRepository) CountPlaced(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockImportLogRepository is a mock implementation of ports.ImportLogRepository
type MockImportLogRepository struct {
	mock.Mock
}

func (m *MockImportLogRepository) Record(ctx context.Context, entry *roster.ImportLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockImportLogRepository) ListRecent(ctx context.Context, limit int) ([]roster.ImportLog, error) {
	args := m.Called(ctx, limit)
	if e := args.Get(0); e != nil {
		return e.([]roster.ImportLog), args.Error(1)
	}
	return nil, args.Error(1)
}
