// ABOUTME: Form-level validation for contact and company input
// ABOUTME: Returns the first violated rule per field as a structured error
package models

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	maxNameLen  = 100
	maxEmailLen = 255
	maxNotesLen = 1000
)

// FieldError reports a single validation failure. Only the first violated
// rule for a field is surfaced.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a contact against the form rules. Fields are trimmed
// before checking, matching how they are persisted.
func (c *Contact) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return &FieldError{Field: "name", Message: "name is required"}
	}
	if len(name) > maxNameLen {
		return &FieldError{Field: "name", Message: fmt.Sprintf("name must be %d characters or fewer", maxNameLen)}
	}

	if email := strings.TrimSpace(c.Email); email != "" {
		if len(email) > maxEmailLen {
			return &FieldError{Field: "email", Message: fmt.Sprintf("email must be %d characters or fewer", maxEmailLen)}
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return &FieldError{Field: "email", Message: "invalid email address"}
		}
	}

	if len(strings.TrimSpace(c.Company)) > maxNameLen {
		return &FieldError{Field: "company", Message: fmt.Sprintf("company name must be %d characters or fewer", maxNameLen)}
	}
	if len(strings.TrimSpace(c.Role)) > maxNameLen {
		return &FieldError{Field: "role", Message: fmt.Sprintf("role must be %d characters or fewer", maxNameLen)}
	}
	if len(strings.TrimSpace(c.Notes)) > maxNotesLen {
		return &FieldError{Field: "notes", Message: fmt.Sprintf("notes must be %d characters or fewer", maxNotesLen)}
	}

	// Empty enum fields pick up defaults on insert
	if c.WarmthLevel != "" && !ValidWarmth(string(c.WarmthLevel)) {
		return &FieldError{Field: "warmth_level", Message: "warmth level must be warm, cooling, or cold"}
	}
	if c.ContactType != "" && !ValidContactType(string(c.ContactType)) {
		return &FieldError{Field: "contact_type", Message: "unknown contact type"}
	}
	if c.Recruiter != nil && !ValidRecruiterSpecialization(string(c.Recruiter.Specialization)) {
		return &FieldError{Field: "recruiter_specialization", Message: "unknown recruiter specialization"}
	}

	return nil
}

// Validate checks a company against the form rules.
func (c *Company) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return &FieldError{Field: "name", Message: "name is required"}
	}
	if len(name) > maxNameLen {
		return &FieldError{Field: "name", Message: fmt.Sprintf("name must be %d characters or fewer", maxNameLen)}
	}
	if c.Priority < 0 || c.Priority > 5 {
		return &FieldError{Field: "priority", Message: "priority must be between 0 and 5"}
	}
	if len(strings.TrimSpace(c.Industry)) > maxNameLen {
		return &FieldError{Field: "industry", Message: fmt.Sprintf("industry must be %d characters or fewer", maxNameLen)}
	}
	if len(strings.TrimSpace(c.Notes)) > maxNotesLen {
		return &FieldError{Field: "notes", Message: fmt.Sprintf("notes must be %d characters or fewer", maxNotesLen)}
	}
	return nil
}
