package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"placementcms/domain/core"
	"placementcms/domain/placement"
	"placementcms/domain/roster"
	"placementcms/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const studentColumns = `id, name, email, roll_no, branch, btech_percentage, status,
	mobile, gender, assigned_tpo, year_of_passout, graduation_percentage, college_name,
	inter_diploma_percentage, previous_college_name, ssc_percentage, school_name,
	pan_card_no, aadhar_card_no, created_at, updated_at`

const insertStudentSQL = `
	INSERT INTO students (id, name, email, roll_no, branch, btech_percentage, status,
		mobile, gender, assigned_tpo, year_of_passout, graduation_percentage, college_name,
		inter_diploma_percentage, previous_college_name, ssc_percentage, school_name,
		pan_card_no, aadhar_card_no, created_at, updated_at)
	VALUES (:id, :name, :email, :roll_no, :branch, :btech_percentage, :status,
		:mobile, :gender, :assigned_tpo, :year_of_passout, :graduation_percentage, :college_name,
		:inter_diploma_percentage, :previous_college_name, :ssc_percentage, :school_name,
		:pan_card_no, :aadhar_card_no, :created_at, :updated_at)
`

// StudentRepositoryImpl implements StudentRepository for PostgreSQL
type StudentRepositoryImpl struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new PostgreSQL student repository
func NewStudentRepository(db *sqlx.DB) ports.StudentRepository {
	return &StudentRepositoryImpl{db: db}
}

func newStudent(record roster.StudentRecord) placement.Student {
	now := time.Now().UTC()
	return placement.Student{
		ID:            core.NewID(),
		StudentRecord: record,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Create persists a single student
func (r *StudentRepositoryImpl) Create(ctx context.Context, record roster.StudentRecord) (*placement.Student, error) {
	student := newStudent(record)
	if _, err := r.db.NamedExecContext(ctx, insertStudentSQL, student); err != nil {
		return nil, mapStudentError(err)
	}
	return &student, nil
}

// BulkCreate inserts every record in one transaction
func (r *StudentRepositoryImpl) BulkCreate(ctx context.Context, records []roster.StudentRecord) ([]placement.Student, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareNamedContext(ctx, insertStudentSQL)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	students := make([]placement.Student, 0, len(records))
	for i, record := range records {
		student := newStudent(record)
		if _, err := stmt.ExecContext(ctx, student); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i+1, record.RollNo, mapStudentError(err))
		}
		students = append(students, student)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return students, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepositoryImpl) GetByID(ctx context.Context, id core.ID) (*placement.Student, error) {
	var student placement.Student
	err := r.db.GetContext(ctx, &student, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// List returns every student, oldest first
func (r *StudentRepositoryImpl) List(ctx context.Context) ([]placement.Student, error) {
	students := []placement.Student{}
	err := r.db.SelectContext(ctx, &students, `SELECT `+studentColumns+` FROM students ORDER BY created_at ASC`)
	return students, err
}

// Update replaces every field of a student
func (r *StudentRepositoryImpl) Update(ctx context.Context, id core.ID, record roster.StudentRecord) (*placement.Student, error) {
	student := placement.Student{ID: id, StudentRecord: record, UpdatedAt: time.Now().UTC()}
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE students SET
			name = :name, email = :email, roll_no = :roll_no, branch = :branch,
			btech_percentage = :btech_percentage, status = :status, mobile = :mobile,
			gender = :gender, assigned_tpo = :assigned_tpo, year_of_passout = :year_of_passout,
			graduation_percentage = :graduation_percentage, college_name = :college_name,
			inter_diploma_percentage = :inter_diploma_percentage,
			previous_college_name = :previous_college_name, ssc_percentage = :ssc_percentage,
			school_name = :school_name, pan_card_no = :pan_card_no, aadhar_card_no = :aadhar_card_no,
			updated_at = :updated_at
		WHERE id = :id
	`, student)
	if err != nil {
		return nil, mapStudentError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, core.ErrStudentNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a student and, by cascade, their placements
func (r *StudentRepositoryImpl) Delete(ctx context.Context, id core.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrStudentNotFound
	}
	return nil
}

// Count returns the number of students
func (r *StudentRepositoryImpl) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM students`)
	return n, err
}

func mapStudentError(err error) error {
	if isUniqueViolation(err) {
		return core.ErrDuplicateStudent
	}
	return err
}

// isUniqueViolation reports a pq unique_violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
