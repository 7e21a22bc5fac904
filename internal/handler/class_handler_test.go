package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	"github.com/noah-isme/class-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

type classServiceMock struct {
	class     *models.Class
	students  []models.Student
	err       error
	lastInput dto.ClassInput
	lastID    string
}

func (m *classServiceMock) List(ctx context.Context) ([]models.Class, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []models.Class{*m.class}, nil
}

func (m *classServiceMock) Get(ctx context.Context, id string) (*models.Class, error) {
	m.lastID = id
	return m.class, m.err
}

func (m *classServiceMock) Create(ctx context.Context, in dto.ClassInput) (*models.Class, error) {
	m.lastInput = in
	return m.class, m.err
}

func (m *classServiceMock) Update(ctx context.Context, id string, in dto.ClassInput) (*models.Class, error) {
	m.lastID = id
	m.lastInput = in
	return m.class, m.err
}

func (m *classServiceMock) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return m.err
}

func (m *classServiceMock) ListStudents(ctx context.Context, classID string) ([]models.Student, error) {
	m.lastID = classID
	return m.students, m.err
}

type rosterExporterMock struct {
	lastFormat dto.RosterFormat
	err        error
}

func (m *rosterExporterMock) Export(ctx context.Context, classID string, format dto.RosterFormat) (*dto.RosterFile, error) {
	m.lastFormat = format
	if m.err != nil {
		return nil, m.err
	}
	return &dto.RosterFile{Filename: "roster-" + classID + "." + string(format), ContentType: "text/csv", Body: []byte("first_name\nLucas\n")}, nil
}

func sampleClass() *models.Class {
	start, _ := models.ParseDate("2024-09-11")
	end, _ := models.ParseDate("2024-10-11")
	return &models.Class{ID: "c-1", Name: "Portuguese", Description: "Study of Portuguese language", StartDate: start, EndDate: end}
}

func newClassRouter(svc *classServiceMock, rosters *rosterExporterMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewClassHandler(svc, rosters).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestClassHandlerCreate(t *testing.T) {
	svc := &classServiceMock{class: sampleClass()}
	r := newClassRouter(svc, &rosterExporterMock{})

	w := doRequest(r, http.MethodPost, "/api/v1/classes",
		`{"name":"Portuguese","description":"Study of Portuguese language","start_date":"2024-09-11","end_date":"2024-10-11"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2024-10-11", svc.lastInput.EndDate)
	assert.Contains(t, w.Body.String(), `"end_date":"2024-10-11"`)
}

func TestClassHandlerUpdateValidation(t *testing.T) {
	svc := &classServiceMock{err: appErrors.Validation([]appErrors.FieldError{{Field: "end_date", Message: "end_date can't be earlier than start_date"}})}
	r := newClassRouter(svc, &rosterExporterMock{})

	w := doRequest(r, http.MethodPut, "/api/v1/classes/c-1", `{"start_date":"2024-09-11","end_date":"2024-09-10"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "end_date can't be earlier than start_date")
	assert.Equal(t, "c-1", svc.lastID)
}

func TestClassHandlerDeleteMissing(t *testing.T) {
	r := newClassRouter(&classServiceMock{err: appErrors.NotFound(appErrors.KindClass)}, &rosterExporterMock{})

	w := doRequest(r, http.MethodDelete, "/api/v1/classes/c-9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "class not found")
}

func TestClassHandlerListStudents(t *testing.T) {
	svc := &classServiceMock{students: []models.Student{*sampleStudent()}}
	r := newClassRouter(svc, &rosterExporterMock{})

	w := doRequest(r, http.MethodGet, "/api/v1/classes/c-1/students", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c-1", svc.lastID)
	assert.Contains(t, w.Body.String(), "lucas@gmail.com")
}

func TestClassHandlerRoster(t *testing.T) {
	rosters := &rosterExporterMock{}
	r := newClassRouter(&classServiceMock{}, rosters)

	w := doRequest(r, http.MethodGet, "/api/v1/classes/c-1/roster", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.RosterFormatCSV, rosters.lastFormat)
	assert.Equal(t, `attachment; filename="roster-c-1.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	w = doRequest(r, http.MethodGet, "/api/v1/classes/c-1/roster?format=xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.RosterFormatXLSX, rosters.lastFormat)
}

func TestClassHandlerRosterRejectsUnknownFormat(t *testing.T) {
	rosters := &rosterExporterMock{}
	r := newClassRouter(&classServiceMock{}, rosters)

	w := doRequest(r, http.MethodGet, "/api/v1/classes/c-1/roster?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, rosters.lastFormat)
}
