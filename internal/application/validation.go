package application

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"rendervault/internal/domain"
)

// MaxPoolNameLength matches the NAME column width of the index
const MaxPoolNameLength = 128

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "assetPath" -> "asset path")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "assetPath" -> "asset path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"poolName":  "pool name",
		"poolRoot":  "pool root",
		"assetPath": "asset path",
		"tag":       "tag",
		"category":  "category",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}

// ValidateCategory checks that a category is known and, when pooled is set,
// that it is one of the indexed pool categories.
func ValidateCategory(fieldName string, c domain.Category, pooled bool) error {
	l, err := domain.LayoutFor(c)
	if err != nil {
		return &ValidationError{Field: fieldName, Message: fmt.Sprintf("unknown category %d", int(c))}
	}
	if pooled && !l.Indexed {
		return &ValidationError{Field: fieldName, Message: fmt.Sprintf("%s has no pools", c)}
	}
	return nil
}

// ValidatePoolName checks that a pool name fits the index and is usable as a label
func ValidatePoolName(fieldName, name string) error {
	if err := ValidateRequired(fieldName, name); err != nil {
		return err
	}
	if utf8.RuneCountInString(name) > MaxPoolNameLength {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be at most %d characters", formatFieldName(fieldName), MaxPoolNameLength),
		}
	}
	if strings.TrimSpace(name) != name {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must not start or end with spaces", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateAbsPath checks that a path is non-empty and absolute
func ValidateAbsPath(fieldName, path string) error {
	if err := ValidateRequired(fieldName, path); err != nil {
		return err
	}
	if !filepath.IsAbs(path) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be absolute, got: %s", formatFieldName(fieldName), path),
		}
	}
	return nil
}
