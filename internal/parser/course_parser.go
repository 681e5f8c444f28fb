package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var courseRegex = regexp.MustCompile(`^([A-Z]{2,8})-(\d{3,4})$`)

// NormalizeCourseCode normalizes course codes to uppercase DEPT-NNN format.
// Accepts formats like:
// - "info-2010", "INFO-2010" -> "INFO-2010"
// - "math-101" -> "MATH-101"
// Returns error if format is invalid
func NormalizeCourseCode(code string) (string, error) {
	if code == "" {
		return "", nil
	}

	code = strings.ToUpper(strings.TrimSpace(code))

	if !courseRegex.MatchString(code) {
		return "", fmt.Errorf("invalid course code. Use: DEPT-NNN (letters-numbers)")
	}

	return code, nil
}

// IsValidCourseCode checks if a string matches the course code format
func IsValidCourseCode(code string) bool {
	if code == "" {
		return true // Empty is valid (optional field)
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	return courseRegex.MatchString(code)
}
