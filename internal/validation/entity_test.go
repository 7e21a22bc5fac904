package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

func fixedNow() time.Time {
	return time.Date(2024, 9, 11, 10, 0, 0, 0, time.UTC)
}

func fieldNames(violations []appErrors.FieldError) []string {
	names := make([]string, 0, len(violations))
	for _, v := range violations {
		names = append(names, v.Field)
	}
	return names
}

func TestStudentValid(t *testing.T) {
	v := New(nil, fixedNow)
	violations := v.Student(dto.StudentInput{FirstName: "Lucas", LastName: "Gama", Email: "lucas@gmail.com", DateOfBirth: "1997-08-15"})
	assert.Empty(t, violations)
}

func TestStudentCollectsEveryViolation(t *testing.T) {
	v := New(nil, fixedNow)
	violations := v.Student(dto.StudentInput{
		FirstName:   "   ",
		LastName:    strings.Repeat("x", 21),
		Email:       "not-an-email",
		DateOfBirth: "15/08/1997",
	})

	require.Len(t, violations, 4)
	assert.Equal(t, []string{"first_name", "last_name", "email", "date_of_birth"}, fieldNames(violations))
	assert.Equal(t, "first_name should not be empty", violations[0].Message)
	assert.Equal(t, "last_name must be between 1 and 20 characters", violations[1].Message)
	assert.Equal(t, "email must be an email", violations[2].Message)
	assert.Equal(t, "date_of_birth should be in YYYY-MM-DD format", violations[3].Message)
}

func TestStudentDateOfBirthBoundary(t *testing.T) {
	v := New(nil, fixedNow)
	base := dto.StudentInput{FirstName: "Lucas", LastName: "Gama", Email: "lucas@gmail.com"}

	base.DateOfBirth = "2024-09-11"
	assert.Empty(t, v.Student(base))

	base.DateOfBirth = "2024-09-12"
	violations := v.Student(base)
	require.Len(t, violations, 1)
	assert.Equal(t, "date_of_birth can't be greater than the current date", violations[0].Message)
}

func TestStudentLengthCountsCharacters(t *testing.T) {
	v := New(nil, fixedNow)
	in := dto.StudentInput{FirstName: strings.Repeat("é", 20), LastName: "Gama", Email: "lucas@gmail.com", DateOfBirth: "1997-08-15"}
	assert.Empty(t, v.Student(in))
}

func TestClassValid(t *testing.T) {
	v := New(nil, fixedNow)
	assert.Empty(t, v.Class(dto.ClassInput{Name: "Portuguese", Description: "Study of Portuguese language", StartDate: "2024-09-11", EndDate: "2024-10-11"}))
	assert.Empty(t, v.Class(dto.ClassInput{Name: "Math", StartDate: "2024-09-11", EndDate: "2024-09-11"}))
}

func TestClassEndBeforeStart(t *testing.T) {
	v := New(nil, fixedNow)
	violations := v.Class(dto.ClassInput{Name: "Math", StartDate: "2024-09-11", EndDate: "2024-09-10"})
	require.Len(t, violations, 1)
	assert.Equal(t, "end_date", violations[0].Field)
	assert.Equal(t, "end_date can't be earlier than start_date", violations[0].Message)
}

func TestClassMalformedDatesReportedOnce(t *testing.T) {
	v := New(nil, fixedNow)
	violations := v.Class(dto.ClassInput{Name: "Math", StartDate: "11-09-2024", EndDate: "2024-09-10"})
	require.Len(t, violations, 1)
	assert.Equal(t, "start_date", violations[0].Field)
}

func TestClassCollectsEveryViolation(t *testing.T) {
	v := New(nil, fixedNow)
	violations := v.Class(dto.ClassInput{Name: "", Description: strings.Repeat("d", 31), StartDate: "", EndDate: "x"})
	assert.Equal(t, []string{"name", "description", "start_date", "end_date"}, fieldNames(violations))
	assert.Equal(t, "description must be no longer than 30 characters", violations[1].Message)
}
