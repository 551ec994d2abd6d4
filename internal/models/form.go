package models

import (
	"regexp"
	"strings"
)

// FormDraft holds the in-progress, unsaved edit of a user's editable fields.
type FormDraft struct {
	FirstName string
	LastName  string
	Email     string
}

// FieldErrors carries one human-readable validation message per editable
// field, or the empty string when the field is valid. The three fields are
// fixed on purpose: no string-keyed lookup.
type FieldErrors struct {
	FirstName string
	LastName  string
	Email     string
}

// Any reports whether any field failed validation.
func (e FieldErrors) Any() bool {
	return e.FirstName != "" || e.LastName != "" || e.Email != ""
}

// Basic local@domain.tld shape check, same loose rule the directory UI uses.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validate checks the draft and returns per-field messages. It runs on
// submit only; a field that passes gets an empty message regardless of the
// other fields, so correcting one field clears exactly that field's error.
func (d FormDraft) Validate() (FieldErrors, bool) {
	var errs FieldErrors

	if strings.TrimSpace(d.FirstName) == "" {
		errs.FirstName = "First name is required"
	}
	if strings.TrimSpace(d.LastName) == "" {
		errs.LastName = "Last name is required"
	}
	if strings.TrimSpace(d.Email) == "" {
		errs.Email = "Email is required"
	} else if !emailPattern.MatchString(d.Email) {
		errs.Email = "Email is invalid"
	}

	return errs, !errs.Any()
}
