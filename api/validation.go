// Package api provides the HTTP interface of the search engine: an HTML page
// and a JSON API served with gin.
package api

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxQueryRunes bounds the length of a search query.
const maxQueryRunes = 1000

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateDocumentID parses a document id path parameter. Ids are positive
// integers.
func ValidateDocumentID(raw string) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if raw == "" {
		result.AddError("document_id", "Document ID is required")
		return 0, result
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError("document_id", "Document ID must be an integer")
		return 0, result
	}
	if id < 1 {
		result.AddError("document_id", "Document ID must be positive")
		return 0, result
	}

	return id, result
}

// ValidateDocumentText checks the text of a document to add.
func ValidateDocumentText(text string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(text) == "" {
		result.AddError("text", "Document text cannot be empty")
	}

	return result
}

// ValidateSearchRequest checks a query string and requested limit.
// A blank query is valid and returns no results.
func ValidateSearchRequest(query string, limit int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if utf8.RuneCountInString(query) > maxQueryRunes {
		result.AddError("query", "Query cannot exceed "+strconv.Itoa(maxQueryRunes)+" characters")
	}
	if limit < 0 {
		result.AddError("limit", "Limit cannot be negative")
	}

	return result
}

// ParseLimit parses an optional limit query parameter.
func ParseLimit(raw string) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}
	if raw == "" {
		return 0, result
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError("limit", "Limit must be an integer")
		return 0, result
	}
	if limit < 0 {
		result.AddError("limit", "Limit cannot be negative")
		return 0, result
	}
	return limit, result
}
