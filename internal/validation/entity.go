package validation

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

// Field limits shared by create and update.
const (
	NameMaxLength        = 20
	DescriptionMaxLength = 30
)

// Validator evaluates entity field invariants.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New constructs a Validator. A nil validate or now falls back to defaults.
func New(validate *validator.Validate, now func() time.Time) *Validator {
	if validate == nil {
		validate = validator.New()
	}
	if now == nil {
		now = time.Now
	}
	return &Validator{validate: validate, now: now}
}

// Student returns every violated constraint of a student submission.
func (v *Validator) Student(in dto.StudentInput) []appErrors.FieldError {
	return Collect(
		Field("FirstName", in.FirstName, Required, Length(1, NameMaxLength)),
		Field("LastName", in.LastName, Required, Length(1, NameMaxLength)),
		Field("Email", in.Email, Required, Email(v.validate)),
		Field("DateOfBirth", in.DateOfBirth, Required, ValidDate, NotInFuture(v.now)),
	)
}

// Class returns every violated constraint of a class submission.
func (v *Validator) Class(in dto.ClassInput) []appErrors.FieldError {
	return Collect(
		Field("Name", in.Name, Required, Length(1, NameMaxLength)),
		Field("Description", in.Description, Optional(MaxLength(DescriptionMaxLength))),
		Field("StartDate", in.StartDate, Required, ValidDate),
		Field("EndDate", in.EndDate, Required, ValidDate, NotBefore("StartDate", in.StartDate)),
	)
}
