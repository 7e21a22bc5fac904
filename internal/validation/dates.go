package validation

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/class-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

var (
	dateValidate = validator.New()
	dateTag      = "datetime=" + models.DateLayout
)

// IsDateFormatValid reports whether value is a real calendar date written
// exactly as YYYY-MM-DD. The digit scan rejects sign-prefixed years such as
// "+024-09-11", which time parsing accepts.
func IsDateFormatValid(value string) bool {
	if len(value) != len(models.DateLayout) {
		return false
	}
	for i := 0; i < len(value); i++ {
		if i == 4 || i == 7 {
			if value[i] != '-' {
				return false
			}
			continue
		}
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return dateValidate.Var(value, dateTag) == nil
}

// DateFormat fails when value is not a strict YYYY-MM-DD date.
func DateFormat(field, value string) *appErrors.FieldError {
	if IsDateFormatValid(value) {
		return nil
	}
	return fieldError(field, fmt.Sprintf("%s should be in YYYY-MM-DD format", ToSnake(field)))
}

// DateNotBefore fails when value is earlier than the sibling date. Malformed
// values on either side pass; DateFormat reports those.
func DateNotBefore(field, value, siblingField, siblingValue string) *appErrors.FieldError {
	if !IsDateFormatValid(value) || !IsDateFormatValid(siblingValue) {
		return nil
	}
	end, _ := models.ParseDate(value)
	start, _ := models.ParseDate(siblingValue)
	if !end.Before(start.Time) {
		return nil
	}
	return fieldError(field, fmt.Sprintf("%s can't be earlier than %s", ToSnake(field), ToSnake(siblingField)))
}

// DateNotInFuture fails when value is later than the calendar date of now.
// Malformed values pass; DateFormat reports those.
func DateNotInFuture(field, value string, now time.Time) *appErrors.FieldError {
	if !IsDateFormatValid(value) {
		return nil
	}
	date, _ := models.ParseDate(value)
	today := models.NewDate(now)
	if !date.After(today.Time) {
		return nil
	}
	return fieldError(field, fmt.Sprintf("%s can't be greater than the current date", ToSnake(field)))
}

func fieldError(field, message string) *appErrors.FieldError {
	return &appErrors.FieldError{Field: ToSnake(field), Message: message}
}
