package main

import (
	"context"
	"fmt"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	"github.com/noah-isme/class-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

type studentWriter interface {
	Create(ctx context.Context, in dto.StudentInput) (*models.Student, error)
	Enroll(ctx context.Context, studentID, classID string) error
}

type classWriter interface {
	Create(ctx context.Context, in dto.ClassInput) (*models.Class, error)
}

type studentLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
}

type classLookup interface {
	List(ctx context.Context) ([]models.Class, error)
}

type seedResult struct {
	students int
	classes  int
	enrolled int
}

// seeder inserts the sample data set. Rows that already exist are reused, so
// running it twice leaves the database unchanged.
type seeder struct {
	students      studentWriter
	classes       classWriter
	studentLookup studentLookup
	classLookup   classLookup
}

func (s seeder) run(ctx context.Context) (seedResult, error) {
	var result seedResult

	studentIDs := make([]string, len(sampleStudents))
	for i, in := range sampleStudents {
		student, err := s.students.Create(ctx, in)
		if appErrors.IsConflict(err, appErrors.ReasonDuplicateEmail) {
			student, err = s.studentLookup.FindByEmail(ctx, in.Email)
		}
		if err != nil {
			return result, fmt.Errorf("seed student %s: %w", in.Email, err)
		}
		studentIDs[i] = student.ID
	}
	result.students = len(studentIDs)

	existing, err := s.classLookup.List(ctx)
	if err != nil {
		return result, fmt.Errorf("list classes: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, class := range existing {
		if _, ok := byName[class.Name]; !ok {
			byName[class.Name] = class.ID
		}
	}

	classIDs := make([]string, len(sampleClasses))
	for i, in := range sampleClasses {
		if id, ok := byName[in.Name]; ok {
			classIDs[i] = id
			continue
		}
		class, err := s.classes.Create(ctx, in)
		if err != nil {
			return result, fmt.Errorf("seed class %s: %w", in.Name, err)
		}
		classIDs[i] = class.ID
		byName[in.Name] = class.ID
	}
	result.classes = len(classIDs)

	for studentIdx, classIdxs := range sampleEnrollments {
		for _, classIdx := range classIdxs {
			err := s.students.Enroll(ctx, studentIDs[studentIdx], classIDs[classIdx])
			switch {
			case err == nil:
				result.enrolled++
			case appErrors.IsConflict(err, appErrors.ReasonAlreadyEnrolled):
			default:
				return result, fmt.Errorf("seed enrollment: %w", err)
			}
		}
	}
	return result, nil
}
