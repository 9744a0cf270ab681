// Package validation checks story templates before they are played.
//
// The marker rules never reject a template: stray or unbalanced braces are
// simply kept as text. That is rarely what an author meant, so the validate
// command and the story loader in the TUI report them here.
//
// Severity:
// - Errors: stray '}', unclosed '{', '{' abandoned by a nested '{'
// - Warnings: empty labels, stories with no blanks at all
package validation

import (
	"fmt"
	"strings"

	"github.com/dpshade/fill-in-the-blank/internal/blanks"
	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"github.com/dpshade/fill-in-the-blank/internal/models"
)

// ValidationResult represents the result of validating one story
type ValidationResult struct {
	StoryID  string              `json:"story"`
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors,omitempty"`
	Warnings []ValidationWarning `json:"warnings,omitempty"`
}

// ValidationError is a problem that makes the story play differently from
// how it reads
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidationWarning is a problem worth mentioning that does not block play
type ValidationWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidateStory lints the story's template
func ValidateStory(story *models.Story) *ValidationResult {
	result := &ValidationResult{
		StoryID: story.ID,
		Valid:   true,
	}

	for _, issue := range blanks.Lint(story.Content) {
		switch issue.Kind {
		case blanks.IssueEmptyLabel:
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   "content",
				Message: issue.Kind.Describe(),
				Line:    issue.Line,
				Column:  issue.Column,
			})
		default:
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "content",
				Code:    strings.ToUpper(string(issue.Kind)),
				Message: issue.Kind.Describe(),
				Line:    issue.Line,
				Column:  issue.Column,
			})
		}
	}

	if blanks.Count(story.Content) == 0 {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "content",
			Message: "story has no blanks to fill",
		})
	}

	if story.Width < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "width",
			Code:    "INVALID_WIDTH",
			Message: fmt.Sprintf("width must be positive, got %d", story.Width),
		})
	}

	return result
}

// ValidateWidth checks a wrap width
func ValidateWidth(width int) error {
	if width <= 0 {
		return errors.InvalidArgumentError(fmt.Sprintf("width must be positive, got %d", width))
	}
	return nil
}

// Location formats the line and column of an entry, or "" if it has none
func Location(line, column int) string {
	if line == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", line, column)
}

// ToAppError converts an invalid result to a VALIDATION_ERROR; it returns nil
// for a valid result.
func (result *ValidationResult) ToAppError() *errors.AppError {
	if result.Valid {
		return nil
	}

	if len(result.Errors) == 0 {
		return errors.ValidationError("Validation failed")
	}

	// Use the first error as the primary error
	firstError := result.Errors[0]
	appErr := errors.ValidationError(fmt.Sprintf("Story '%s': %s", result.StoryID, firstError.Message))

	var details []string
	for _, validationErr := range result.Errors {
		if loc := Location(validationErr.Line, validationErr.Column); loc != "" {
			details = append(details, fmt.Sprintf("%s %s", loc, validationErr.Message))
			continue
		}
		details = append(details, fmt.Sprintf("%s: %s", validationErr.Field, validationErr.Message))
	}

	appErr.WithDetails(strings.Join(details, "; "))
	appErr.WithContext("validation_errors", result.Errors)
	if len(result.Warnings) > 0 {
		appErr.WithContext("validation_warnings", result.Warnings)
	}

	return appErr
}
