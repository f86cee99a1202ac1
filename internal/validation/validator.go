package validation

import (
	"regexp"
	"strings"

	"interview-agent/internal/domain"
)

const (
	maxJobTitleLength       = 255
	maxJobDescriptionLength = 8000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest validates the generation request fields.
// Emptiness is checked after trimming; the service layer re-validates
// independently of this check.
func (v *Validator) ValidateGenerateRequest(jobTitle, jobDescription string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	title := strings.TrimSpace(jobTitle)
	if title == "" {
		errors = append(errors, domain.NewMissingFieldError("job_title"))
	} else if len(title) > maxJobTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("job_title", len(title), 1, maxJobTitleLength))
	}

	description := strings.TrimSpace(jobDescription)
	if description == "" {
		errors = append(errors, domain.NewMissingFieldError("job_description"))
	} else if len(description) > maxJobDescriptionLength {
		errors = append(errors, domain.NewOutOfRangeError("job_description", len(description), 1, maxJobDescriptionLength))
	}

	return errors
}

// ValidateRecordID validates a record identifier path parameter
func (v *Validator) ValidateRecordID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	// Check if all characters are valid base32 (Crockford's Base32)
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
