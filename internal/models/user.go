package models

// User represents a single record in the remote user directory. IDs are
// assigned by the directory and never change across fetch/edit cycles.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// FullName returns the display name for a user.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserPage is one fetched batch of users plus pagination metadata.
type UserPage struct {
	Users      []User `json:"data"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}
