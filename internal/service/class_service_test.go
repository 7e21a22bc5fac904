package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

func TestClassServiceDateRange(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	backwards := portuguese()
	backwards.EndDate = "2024-09-10"
	_, err := f.classes.Create(ctx, backwards)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.CodeValidation, appErr.Code)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "end_date can't be earlier than start_date", appErr.Fields[0].Message)

	sameDay := portuguese()
	sameDay.EndDate = sameDay.StartDate
	class, err := f.classes.Create(ctx, sameDay)
	require.NoError(t, err)
	assert.Equal(t, class.StartDate, class.EndDate)
}

func TestClassServiceCreateWithoutDescription(t *testing.T) {
	f := newEnrollmentFixture(t)

	class, err := f.classes.Create(context.Background(), dto.ClassInput{Name: "Math", StartDate: "2024-01-01", EndDate: "2024-06-01"})
	require.NoError(t, err)
	assert.Empty(t, class.Description)
}

func TestClassServiceUpdate(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	class, err := f.classes.Create(ctx, portuguese())
	require.NoError(t, err)

	in := portuguese()
	in.Name = "Portuguese II"
	in.EndDate = "2024-12-20"
	updated, err := f.classes.Update(ctx, class.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Portuguese II", updated.Name)
	assert.Equal(t, "2024-12-20", updated.EndDate.String())

	_, err = f.classes.Update(ctx, "c3f4b1a2-0000-4000-8000-000000000000", in)
	assert.True(t, appErrors.IsNotFound(err, appErrors.KindClass))
}

func TestClassServiceDeleteCascadesEnrollments(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	student, _ := f.students.Create(ctx, lucas())
	portugueseClass, _ := f.classes.Create(ctx, portuguese())
	math := portuguese()
	math.Name = "Math"
	mathClass, _ := f.classes.Create(ctx, math)
	require.NoError(t, f.students.Enroll(ctx, student.ID, portugueseClass.ID))
	require.NoError(t, f.students.Enroll(ctx, student.ID, mathClass.ID))

	before, err := f.students.ListClasses(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, before, 2)

	require.NoError(t, f.classes.Delete(ctx, portugueseClass.ID))
	assert.Equal(t, 1, f.store.enrollmentCount())

	after, err := f.students.ListClasses(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, mathClass.ID, after[0].ID)

	_, err = f.classes.Get(ctx, portugueseClass.ID)
	assert.True(t, appErrors.IsNotFound(err, appErrors.KindClass))
	assert.True(t, appErrors.IsNotFound(f.classes.Delete(ctx, portugueseClass.ID), appErrors.KindClass))
}

func TestClassServiceListStudents(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	class, _ := f.classes.Create(ctx, portuguese())
	first, _ := f.students.Create(ctx, lucas())
	other := lucas()
	other.FirstName = "Ana"
	other.Email = "ana@gmail.com"
	second, _ := f.students.Create(ctx, other)

	require.NoError(t, f.students.Enroll(ctx, second.ID, class.ID))
	require.NoError(t, f.students.Enroll(ctx, first.ID, class.ID))

	students, err := f.classes.ListStudents(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Ana", students[0].FirstName)
	assert.Equal(t, "Lucas", students[1].FirstName)

	_, err = f.classes.ListStudents(ctx, "c3f4b1a2-0000-4000-8000-000000000000")
	assert.True(t, appErrors.IsNotFound(err, appErrors.KindClass))
}

func TestClassServiceListInvalidatedOnWrite(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	classes, err := f.classes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, classes)
	assert.Contains(t, f.cache.entries, cacheKeyClassList)

	_, err = f.classes.Create(ctx, portuguese())
	require.NoError(t, err)

	classes, err = f.classes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, classes, 1)
}
