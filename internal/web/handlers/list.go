package handlers

import (
	"strings"

	"github.com/avolkov/userboard/internal/models"
)

// clampPage bounds a requested page number into [1, totalPages]. A
// totalPages of 0 means the bound is not yet known, so only the lower bound
// applies.
func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

// filterUsers returns the users matching the query case-insensitively
// against first name, last name, or email as independent substring tests.
// An empty query passes everything through untouched.
func filterUsers(users []models.User, query string) []models.User {
	if query == "" {
		return users
	}
	q := strings.ToLower(query)

	matched := make([]models.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			matched = append(matched, u)
		}
	}
	return matched
}

// removeUser drops the user with the given ID, keyed by ID match rather than
// position, preserving the order of everyone else. An ID that is not present
// leaves the set unchanged.
func removeUser(users []models.User, id int) []models.User {
	if id <= 0 {
		return users
	}
	kept := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return kept
}
