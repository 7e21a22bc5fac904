package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

// Check inspects one field value and returns a violation or nil.
type Check func(field, value string) *appErrors.FieldError

// Rule yields at most one violation for a single field.
type Rule func() *appErrors.FieldError

// Field chains checks for one field, stopping at the first failing check so a
// field never reports the same problem twice.
func Field(name, value string, checks ...Check) Rule {
	return func() *appErrors.FieldError {
		for _, check := range checks {
			if fe := check(name, value); fe != nil {
				return fe
			}
		}
		return nil
	}
}

// Optional skips the remaining checks when value is empty.
func Optional(checks ...Check) Check {
	return func(field, value string) *appErrors.FieldError {
		if value == "" {
			return nil
		}
		for _, check := range checks {
			if fe := check(field, value); fe != nil {
				return fe
			}
		}
		return nil
	}
}

// Collect runs every rule and returns all violations in rule order.
func Collect(rules ...Rule) []appErrors.FieldError {
	var violations []appErrors.FieldError
	for _, rule := range rules {
		if fe := rule(); fe != nil {
			violations = append(violations, *fe)
		}
	}
	return violations
}

// Required rejects empty and whitespace-only values.
func Required(field, value string) *appErrors.FieldError {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return fieldError(field, fmt.Sprintf("%s should not be empty", ToSnake(field)))
}

// Length bounds the character count of value to [min, max].
func Length(min, max int) Check {
	return func(field, value string) *appErrors.FieldError {
		n := utf8.RuneCountInString(value)
		if n >= min && n <= max {
			return nil
		}
		return fieldError(field, fmt.Sprintf("%s must be between %d and %d characters", ToSnake(field), min, max))
	}
}

// MaxLength caps the character count of value.
func MaxLength(max int) Check {
	return func(field, value string) *appErrors.FieldError {
		if utf8.RuneCountInString(value) <= max {
			return nil
		}
		return fieldError(field, fmt.Sprintf("%s must be no longer than %d characters", ToSnake(field), max))
	}
}

// Email checks address syntax with the shared validator instance.
func Email(validate *validator.Validate) Check {
	return func(field, value string) *appErrors.FieldError {
		if err := validate.Var(value, "email"); err == nil {
			return nil
		}
		return fieldError(field, fmt.Sprintf("%s must be an email", ToSnake(field)))
	}
}

// ValidDate adapts DateFormat to a Check.
func ValidDate(field, value string) *appErrors.FieldError {
	return DateFormat(field, value)
}

// NotInFuture adapts DateNotInFuture to a Check evaluated against now().
func NotInFuture(now func() time.Time) Check {
	return func(field, value string) *appErrors.FieldError {
		return DateNotInFuture(field, value, now())
	}
}

// NotBefore adapts DateNotBefore to a Check against a named sibling value.
func NotBefore(siblingField, siblingValue string) Check {
	return func(field, value string) *appErrors.FieldError {
		return DateNotBefore(field, value, siblingField, siblingValue)
	}
}
