package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	"github.com/noah-isme/class-enrollment-api/internal/models"
	"github.com/noah-isme/class-enrollment-api/internal/validation"
	"github.com/noah-isme/class-enrollment-api/pkg/database"
	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
	ListEnrolledClassIDs(ctx context.Context, studentID string) ([]string, error)
	IsEnrolled(ctx context.Context, studentID, classID string) (bool, error)
	AddEnrollment(ctx context.Context, studentID, classID string) error
	RemoveEnrollment(ctx context.Context, studentID, classID string) error
}

type classReader interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Class, error)
}

// StudentService handles student use-cases including enrollment.
type StudentService struct {
	repo      studentRepository
	classes   classReader
	validator *validation.Validator
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewStudentService constructs the student service. cache and metrics are optional.
func NewStudentService(repo studentRepository, classes classReader, validator *validation.Validator, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StudentService {
	if validator == nil {
		validator = validation.New(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, classes: classes, validator: validator, cache: cache, metrics: metrics, logger: logger}
}

// List returns every student.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	var cached []models.Student
	if hit, _ := s.cache.Get(ctx, cacheKeyStudentList, &cached); hit {
		return cached, nil
	}
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list students")
	}
	_ = s.cache.Set(ctx, cacheKeyStudentList, students, 0)
	return students, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	return s.load(ctx, id)
}

// Create validates and registers a new student.
func (s *StudentService) Create(ctx context.Context, in dto.StudentInput) (*models.Student, error) {
	if fields := s.validator.Student(in); len(fields) > 0 {
		return nil, appErrors.Validation(fields)
	}
	if err := s.ensureEmailAvailable(ctx, in.Email, ""); err != nil {
		return nil, err
	}
	student := &models.Student{}
	if err := applyStudentInput(student, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Conflict(appErrors.ReasonDuplicateEmail)
		}
		return nil, appErrors.Internal(err, "failed to create student")
	}
	s.cache.Invalidate(ctx, cacheKeyStudentList)
	s.logger.Info("student created", zap.String("student_id", student.ID))
	return student, nil
}

// Update replaces every mutable field of a student in one write.
func (s *StudentService) Update(ctx context.Context, id string, in dto.StudentInput) (*models.Student, error) {
	if fields := s.validator.Student(in); len(fields) > 0 {
		return nil, appErrors.Validation(fields)
	}
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(ctx, in.Email, id); err != nil {
		return nil, err
	}
	updated := *student
	if err := applyStudentInput(&updated, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.NotFound(appErrors.KindStudent)
		case database.IsUniqueViolation(err):
			return nil, appErrors.Conflict(appErrors.ReasonDuplicateEmail)
		}
		return nil, appErrors.Internal(err, "failed to update student")
	}
	s.cache.Invalidate(ctx, cacheKeyStudentList, cachePatternClassStudents)
	return &updated, nil
}

// Delete removes a student and its enrollments.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFound(appErrors.KindStudent)
		}
		return appErrors.Internal(err, "failed to delete student")
	}
	s.cache.Invalidate(ctx, cacheKeyStudentList, studentClassesCacheKey(id), cachePatternClassStudents)
	s.logger.Info("student deleted", zap.String("student_id", id))
	return nil
}

// Enroll adds the student to the class.
func (s *StudentService) Enroll(ctx context.Context, studentID, classID string) (err error) {
	defer func() { s.recordEnrollment(enrollmentOpEnroll, err) }()

	if err := s.ensureBothExist(ctx, studentID, classID); err != nil {
		return err
	}
	enrolled, err := s.repo.IsEnrolled(ctx, studentID, classID)
	if err != nil {
		return appErrors.Internal(err, "failed to check enrollment")
	}
	if enrolled {
		return appErrors.Conflict(appErrors.ReasonAlreadyEnrolled)
	}
	if err := s.repo.AddEnrollment(ctx, studentID, classID); err != nil {
		if database.IsUniqueViolation(err) {
			return appErrors.Conflict(appErrors.ReasonAlreadyEnrolled)
		}
		return appErrors.Internal(err, "failed to enroll student")
	}
	s.cache.Invalidate(ctx, studentClassesCacheKey(studentID), classStudentsCacheKey(classID))
	s.logger.Info("student enrolled", zap.String("student_id", studentID), zap.String("class_id", classID))
	return nil
}

// Unenroll removes the student from the class.
func (s *StudentService) Unenroll(ctx context.Context, studentID, classID string) (err error) {
	defer func() { s.recordEnrollment(enrollmentOpUnenroll, err) }()

	if err := s.ensureBothExist(ctx, studentID, classID); err != nil {
		return err
	}
	enrolled, err := s.repo.IsEnrolled(ctx, studentID, classID)
	if err != nil {
		return appErrors.Internal(err, "failed to check enrollment")
	}
	if !enrolled {
		return appErrors.Conflict(appErrors.ReasonNotEnrolled)
	}
	if err := s.repo.RemoveEnrollment(ctx, studentID, classID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Conflict(appErrors.ReasonNotEnrolled)
		}
		return appErrors.Internal(err, "failed to unenroll student")
	}
	s.cache.Invalidate(ctx, studentClassesCacheKey(studentID), classStudentsCacheKey(classID))
	s.logger.Info("student unenrolled", zap.String("student_id", studentID), zap.String("class_id", classID))
	return nil
}

// ListClasses returns the classes the student is enrolled in, ordered by class creation.
func (s *StudentService) ListClasses(ctx context.Context, studentID string) ([]models.Class, error) {
	if _, err := s.load(ctx, studentID); err != nil {
		return nil, err
	}
	key := studentClassesCacheKey(studentID)
	var cached []models.Class
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	ids, err := s.repo.ListEnrolledClassIDs(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list enrollments")
	}
	classes, err := s.classes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load classes")
	}
	_ = s.cache.Set(ctx, key, classes, 0)
	return classes, nil
}

func (s *StudentService) load(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound(appErrors.KindStudent)
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}

func (s *StudentService) ensureBothExist(ctx context.Context, studentID, classID string) error {
	if _, err := s.load(ctx, studentID); err != nil {
		return err
	}
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFound(appErrors.KindClass)
		}
		return appErrors.Internal(err, "failed to load class")
	}
	return nil
}

// ensureEmailAvailable is a pre-check only; the storage constraint stays authoritative.
func (s *StudentService) ensureEmailAvailable(ctx context.Context, email, excludeID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Internal(err, "failed to validate email")
	}
	if existing.ID != excludeID {
		return appErrors.Conflict(appErrors.ReasonDuplicateEmail)
	}
	return nil
}

func (s *StudentService) recordEnrollment(operation string, err error) {
	result := "ok"
	if err != nil {
		result = appErrors.FromError(err).Code
	}
	s.metrics.RecordEnrollment(operation, result)
}

func applyStudentInput(student *models.Student, in dto.StudentInput) error {
	dob, err := models.ParseDate(in.DateOfBirth)
	if err != nil {
		return appErrors.Internal(err, "failed to parse date_of_birth")
	}
	student.FirstName = in.FirstName
	student.LastName = in.LastName
	student.Email = in.Email
	student.DateOfBirth = dob
	return nil
}
