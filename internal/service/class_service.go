package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	"github.com/noah-isme/class-enrollment-api/internal/models"
	"github.com/noah-isme/class-enrollment-api/internal/validation"
	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}

type classRosterReader interface {
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
}

// ClassService coordinates class operations.
type ClassService struct {
	repo      classRepository
	roster    classRosterReader
	validator *validation.Validator
	cache     *CacheService
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, roster classRosterReader, validator *validation.Validator, cache *CacheService, logger *zap.Logger) *ClassService {
	if validator == nil {
		validator = validation.New(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, roster: roster, validator: validator, cache: cache, logger: logger}
}

// List returns every class.
func (s *ClassService) List(ctx context.Context) ([]models.Class, error) {
	var cached []models.Class
	if hit, _ := s.cache.Get(ctx, cacheKeyClassList, &cached); hit {
		return cached, nil
	}
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list classes")
	}
	_ = s.cache.Set(ctx, cacheKeyClassList, classes, 0)
	return classes, nil
}

// Get returns class details.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound(appErrors.KindClass)
		}
		return nil, appErrors.Internal(err, "failed to load class")
	}
	return class, nil
}

// Create validates and stores a new class.
func (s *ClassService) Create(ctx context.Context, in dto.ClassInput) (*models.Class, error) {
	if fields := s.validator.Class(in); len(fields) > 0 {
		return nil, appErrors.Validation(fields)
	}
	class := &models.Class{}
	if err := applyClassInput(class, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Internal(err, "failed to create class")
	}
	s.cache.Invalidate(ctx, cacheKeyClassList)
	s.logger.Info("class created", zap.String("class_id", class.ID))
	return class, nil
}

// Update replaces every mutable field of a class in one write.
func (s *ClassService) Update(ctx context.Context, id string, in dto.ClassInput) (*models.Class, error) {
	if fields := s.validator.Class(in); len(fields) > 0 {
		return nil, appErrors.Validation(fields)
	}
	class, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *class
	if err := applyClassInput(&updated, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound(appErrors.KindClass)
		}
		return nil, appErrors.Internal(err, "failed to update class")
	}
	s.cache.Invalidate(ctx, cacheKeyClassList, cachePatternStudentClasses)
	return &updated, nil
}

// Delete removes a class together with every enrollment referencing it.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFound(appErrors.KindClass)
		}
		return appErrors.Internal(err, "failed to delete class")
	}
	s.cache.Invalidate(ctx, cacheKeyClassList, classStudentsCacheKey(id), cachePatternStudentClasses)
	s.logger.Info("class deleted", zap.String("class_id", id))
	return nil
}

// ListStudents returns the students enrolled in a class ordered by enrollment time.
func (s *ClassService) ListStudents(ctx context.Context, classID string) ([]models.Student, error) {
	if _, err := s.Get(ctx, classID); err != nil {
		return nil, err
	}
	key := classStudentsCacheKey(classID)
	var cached []models.Student
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	students, err := s.roster.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list class students")
	}
	_ = s.cache.Set(ctx, key, students, 0)
	return students, nil
}

func applyClassInput(class *models.Class, in dto.ClassInput) error {
	start, err := models.ParseDate(in.StartDate)
	if err != nil {
		return appErrors.Internal(err, "failed to parse start_date")
	}
	end, err := models.ParseDate(in.EndDate)
	if err != nil {
		return appErrors.Internal(err, "failed to parse end_date")
	}
	class.Name = in.Name
	class.Description = in.Description
	class.StartDate = start
	class.EndDate = end
	return nil
}
