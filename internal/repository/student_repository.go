package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/class-enrollment-api/internal/models"
	"github.com/noah-isme/class-enrollment-api/pkg/database"
)

const studentColumns = "id, first_name, last_name, email, date_of_birth, created_at, updated_at"

// StudentRepository manages persistence for students and their enrollments.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students ordered by creation.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students ORDER BY created_at, id"
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, sql.ErrNoRows
	}
	query := "SELECT " + studentColumns + " FROM students WHERE id = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmail fetches a student by email. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE email = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListByClass returns the students enrolled in a class ordered by enrollment time.
func (r *StudentRepository) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	const query = `SELECT s.id, s.first_name, s.last_name, s.email, s.date_of_birth, s.created_at, s.updated_at
        FROM students s
        JOIN student_classes sc ON sc.student_id = s.id
        WHERE sc.class_id = $1
        ORDER BY sc.created_at, s.id`
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list class students: %w", err)
	}
	return students, nil
}

// Create inserts a new student record. Duplicate emails yield database.ErrUniqueViolation.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, first_name, last_name, email, date_of_birth, created_at, updated_at)
        VALUES (:id, :first_name, :last_name, :email, :date_of_birth, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", database.TranslateError(err))
	}
	return nil
}

// Update replaces the mutable fields of a student in a single statement.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET first_name = :first_name, last_name = :last_name, email = :email,
        date_of_birth = :date_of_birth, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("update student: %w", database.TranslateError(err))
	}
	return requireAffected(res, "update student")
}

// Delete removes a student together with its enrollments.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM student_classes WHERE student_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete student enrollments: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete student: %w", err)
	}
	if err := requireAffected(res, "delete student"); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete student tx: %w", err)
	}
	return nil
}

// ListEnrolledClassIDs returns the IDs of every class the student is enrolled in.
func (r *StudentRepository) ListEnrolledClassIDs(ctx context.Context, studentID string) ([]string, error) {
	const query = `SELECT class_id FROM student_classes WHERE student_id = $1 ORDER BY created_at, class_id`
	ids := make([]string, 0)
	if err := r.db.SelectContext(ctx, &ids, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrolled classes: %w", err)
	}
	return ids, nil
}

// IsEnrolled checks membership of a single (student, class) pair.
func (r *StudentRepository) IsEnrolled(ctx context.Context, studentID, classID string) (bool, error) {
	const query = `SELECT 1 FROM student_classes WHERE student_id = $1 AND class_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, classID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// AddEnrollment links a student to a class. An existing pair yields database.ErrUniqueViolation.
func (r *StudentRepository) AddEnrollment(ctx context.Context, studentID, classID string) error {
	enrollment := models.Enrollment{StudentID: studentID, ClassID: classID, CreatedAt: time.Now().UTC()}
	const query = `INSERT INTO student_classes (student_id, class_id, created_at) VALUES (:student_id, :class_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("add enrollment: %w", database.TranslateError(err))
	}
	return nil
}

// RemoveEnrollment unlinks a student from a class. It returns sql.ErrNoRows when the pair did not exist.
func (r *StudentRepository) RemoveEnrollment(ctx context.Context, studentID, classID string) error {
	const query = `DELETE FROM student_classes WHERE student_id = $1 AND class_id = $2`
	res, err := r.db.ExecContext(ctx, query, studentID, classID)
	if err != nil {
		return fmt.Errorf("remove enrollment: %w", err)
	}
	return requireAffected(res, "remove enrollment")
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
