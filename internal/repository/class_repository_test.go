package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-enrollment-api/internal/models"
)

func classRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "start_date", "end_date", "created_at", "updated_at"})
}

func TestClassRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	start := time.Date(2024, 9, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM classes WHERE id = $1")).
		WithArgs(classID).
		WillReturnRows(classRows().AddRow(classID, "Portuguese", "Study of Portuguese language", start, end, time.Now(), time.Now()))

	class, err := repo.FindByID(context.Background(), classID)
	require.NoError(t, err)
	assert.Equal(t, "2024-10-11", class.EndDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryFindByIDsEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	classes, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, classes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryFindByIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM classes WHERE id = ANY($1) ORDER BY created_at, id")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(classRows().AddRow(classID, "Math", "", time.Now(), time.Now(), time.Now(), time.Now()))

	classes, err := repo.FindByIDs(context.Background(), []string{classID})
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Math", classes[0].Name)
}

func TestClassRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec("INSERT INTO classes").
		WithArgs(sqlmock.AnyArg(), "Portuguese", "Study of Portuguese language", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	start, _ := models.ParseDate("2024-09-11")
	end, _ := models.ParseDate("2024-10-11")
	class := &models.Class{Name: "Portuguese", Description: "Study of Portuguese language", StartDate: start, EndDate: end}
	require.NoError(t, repo.Create(context.Background(), class))
	assert.NotEmpty(t, class.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryDeleteCascades(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM student_classes WHERE class_id = $1")).
		WithArgs(classID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM classes WHERE id = $1")).
		WithArgs(classID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), classID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryDeleteRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM student_classes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM classes").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), classID)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
