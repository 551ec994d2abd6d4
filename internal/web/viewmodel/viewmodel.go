// Package viewmodel defines the data handed to page templates.
package viewmodel

import "github.com/avolkov/userboard/internal/models"

// Flash is a one-shot notification surfaced by the layout.
type Flash struct {
	Level   string // "success" or "error"
	Message string
}

// Layout captures shared page chrome (title, auth state, notification).
type Layout struct {
	Title           string
	IsAuthenticated bool
	Flash           *Flash
}

// Login backs the login page.
type Login struct {
	Layout
	Email string
}

// Users backs the user list page. Users holds the set actually displayed:
// the fetched page after filtering, never more than one page.
type Users struct {
	Layout
	Users         []models.User
	Page          int
	TotalPages    int
	Query         string
	ConfirmDelete int // user ID whose card shows the inline delete confirmation
}

// Edit backs the edit form page.
type Edit struct {
	Layout
	UserID int
	Draft  models.FormDraft
	Errors models.FieldErrors
}
