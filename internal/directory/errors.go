package directory

import (
	"errors"
	"fmt"
)

// ErrLoginFailed is returned when the directory rejects a login attempt.
// The directory gives no usable detail beyond the status code, so neither
// do we.
var ErrLoginFailed = errors.New("login failed")

// FetchError reports a failed read (list or single user) from the directory.
type FetchError struct {
	ID int // 0 for list fetches
}

func (e *FetchError) Error() string {
	if e.ID == 0 {
		return "failed to fetch users"
	}
	return fmt.Sprintf("failed to fetch user with ID %d", e.ID)
}

// UpdateError reports a failed user update.
type UpdateError struct {
	ID int
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to update user with ID %d", e.ID)
}

// DeleteError reports a failed user deletion.
type DeleteError struct {
	ID int
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete user with ID %d", e.ID)
}
