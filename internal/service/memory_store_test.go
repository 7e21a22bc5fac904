package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/class-enrollment-api/internal/models"
	"github.com/noah-isme/class-enrollment-api/pkg/database"
)

type enrollmentKey struct {
	studentID string
	classID   string
}

// memoryStore mimics the postgres schema: unique emails, unique enrollment
// pairs and cascading deletes.
type memoryStore struct {
	mu          sync.Mutex
	students    map[string]models.Student
	classes     map[string]models.Class
	enrollments map[enrollmentKey]time.Time
	tick        time.Time

	// blindPreChecks hides existing rows from FindByEmail and IsEnrolled so the
	// storage constraint is the only guard.
	blindPreChecks bool
	writes         int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		students:    make(map[string]models.Student),
		classes:     make(map[string]models.Class),
		enrollments: make(map[enrollmentKey]time.Time),
		tick:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) next() time.Time {
	m.tick = m.tick.Add(time.Second)
	return m.tick
}

func (m *memoryStore) studentRepo() *memoryStudentRepo { return &memoryStudentRepo{m} }
func (m *memoryStore) classRepo() *memoryClassRepo     { return &memoryClassRepo{m} }

func (m *memoryStore) enrollmentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.enrollments)
}

type memoryStudentRepo struct{ *memoryStore }

func (r *memoryStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (r *memoryStudentRepo) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blindPreChecks {
		return nil, sql.ErrNoRows
	}
	for _, s := range r.students {
		if s.Email == email {
			found := s
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryStudentRepo) emailTaken(email, excludeID string) bool {
	for _, s := range r.students {
		if s.Email == email && s.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *memoryStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(student.Email, "") {
		return fmt.Errorf("create student: %w: students_email_key", database.ErrUniqueViolation)
	}
	student.ID = uuid.NewString()
	student.CreatedAt = r.next()
	student.UpdatedAt = student.CreatedAt
	r.students[student.ID] = *student
	r.writes++
	return nil
}

func (r *memoryStudentRepo) Update(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[student.ID]; !ok {
		return sql.ErrNoRows
	}
	if r.emailTaken(student.Email, student.ID) {
		return fmt.Errorf("update student: %w: students_email_key", database.ErrUniqueViolation)
	}
	student.UpdatedAt = r.next()
	r.students[student.ID] = *student
	r.writes++
	return nil
}

func (r *memoryStudentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[id]; !ok {
		return sql.ErrNoRows
	}
	for key := range r.enrollments {
		if key.studentID == id {
			delete(r.enrollments, key)
		}
	}
	delete(r.students, id)
	r.writes++
	return nil
}

func (r *memoryStudentRepo) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	type enrolled struct {
		student models.Student
		at      time.Time
	}
	rows := make([]enrolled, 0)
	for key, at := range r.enrollments {
		if key.classID == classID {
			rows = append(rows, enrolled{student: r.students[key.studentID], at: at})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].at.Before(rows[j].at) })
	out := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.student)
	}
	return out, nil
}

func (r *memoryStudentRepo) ListEnrolledClassIDs(ctx context.Context, studentID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0)
	for key := range r.enrollments {
		if key.studentID == studentID {
			ids = append(ids, key.classID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memoryStudentRepo) IsEnrolled(ctx context.Context, studentID, classID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blindPreChecks {
		return false, nil
	}
	_, ok := r.enrollments[enrollmentKey{studentID, classID}]
	return ok, nil
}

func (r *memoryStudentRepo) AddEnrollment(ctx context.Context, studentID, classID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := enrollmentKey{studentID, classID}
	if _, ok := r.enrollments[key]; ok {
		return fmt.Errorf("add enrollment: %w: student_classes_pkey", database.ErrUniqueViolation)
	}
	r.enrollments[key] = r.next()
	r.writes++
	return nil
}

func (r *memoryStudentRepo) RemoveEnrollment(ctx context.Context, studentID, classID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := enrollmentKey{studentID, classID}
	if _, ok := r.enrollments[key]; !ok {
		return sql.ErrNoRows
	}
	delete(r.enrollments, key)
	r.writes++
	return nil
}

type memoryClassRepo struct{ *memoryStore }

func (r *memoryClassRepo) List(ctx context.Context) ([]models.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r *memoryClassRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Class, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.classes[id]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryClassRepo) Create(ctx context.Context, class *models.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	class.ID = uuid.NewString()
	class.CreatedAt = r.next()
	class.UpdatedAt = class.CreatedAt
	r.classes[class.ID] = *class
	r.writes++
	return nil
}

func (r *memoryClassRepo) Update(ctx context.Context, class *models.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[class.ID]; !ok {
		return sql.ErrNoRows
	}
	class.UpdatedAt = r.next()
	r.classes[class.ID] = *class
	r.writes++
	return nil
}

func (r *memoryClassRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[id]; !ok {
		return sql.ErrNoRows
	}
	for key := range r.enrollments {
		if key.classID == id {
			delete(r.enrollments, key)
		}
	}
	delete(r.classes, id)
	r.writes++
	return nil
}
