package validation

import (
	"regexp"
	"strings"
)

var caseBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// ToSnake renders a Go or camelCase field name in snake_case, e.g.
// DateOfBirth -> date_of_birth. Names already in snake_case are unchanged.
func ToSnake(name string) string {
	return strings.ToLower(caseBoundary.ReplaceAllString(name, "${1}_${2}"))
}
