package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	"github.com/noah-isme/class-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
	"github.com/noah-isme/class-enrollment-api/pkg/export"
)

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type classRosterSource interface {
	Get(ctx context.Context, id string) (*models.Class, error)
	ListStudents(ctx context.Context, classID string) ([]models.Student, error)
}

var rosterHeaders = []string{"first_name", "last_name", "email", "date_of_birth"}

var rosterContentTypes = map[dto.RosterFormat]string{
	dto.RosterFormatCSV:  "text/csv",
	dto.RosterFormatPDF:  "application/pdf",
	dto.RosterFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// RosterService renders class rosters as downloadable files.
type RosterService struct {
	classes   classRosterSource
	renderers map[dto.RosterFormat]datasetRenderer
	logger    *zap.Logger
}

// NewRosterService wires the default CSV, PDF and XLSX exporters.
func NewRosterService(classes classRosterSource, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		classes: classes,
		renderers: map[dto.RosterFormat]datasetRenderer{
			dto.RosterFormatCSV:  export.NewCSVExporter(),
			dto.RosterFormatPDF:  export.NewPDFExporter(),
			dto.RosterFormatXLSX: export.NewXLSXExporter(),
		},
		logger: logger,
	}
}

// ParseRosterFormat resolves a query value, defaulting to CSV.
func ParseRosterFormat(value string) (dto.RosterFormat, error) {
	format := dto.RosterFormat(strings.ToLower(strings.TrimSpace(value)))
	if format == "" {
		return dto.RosterFormatCSV, nil
	}
	if _, ok := rosterContentTypes[format]; !ok {
		return "", errUnsupportedFormat()
	}
	return format, nil
}

// Export renders the roster of classID in the requested format.
func (s *RosterService) Export(ctx context.Context, classID string, format dto.RosterFormat) (*dto.RosterFile, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, errUnsupportedFormat()
	}
	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	students, err := s.classes.ListStudents(ctx, classID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Title: class.Name + " roster", Headers: rosterHeaders}
	for _, student := range students {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"first_name":    student.FirstName,
			"last_name":     student.LastName,
			"email":         student.Email,
			"date_of_birth": student.DateOfBirth.String(),
		})
	}

	body, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render roster")
	}
	s.logger.Debug("roster exported", zap.String("class_id", classID), zap.String("format", string(format)), zap.Int("students", len(students)))
	return &dto.RosterFile{
		Filename:    fmt.Sprintf("roster-%s.%s", classID, format),
		ContentType: rosterContentTypes[format],
		Body:        body,
	}, nil
}

func errUnsupportedFormat() error {
	return appErrors.Validation([]appErrors.FieldError{{Field: "format", Message: "format must be one of csv, pdf, xlsx"}})
}
