package models

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// User is the record persisted in the "users" collection. Role is the primary
// tag; Roles is an additional set that may diverge from Role (a teacher can be
// elevated to admin without losing the teacher tag).
type User struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash,omitempty"`
	Role         UserRole   `json:"role"`
	Roles        []UserRole `json:"roles"`
	ProfileImage *string    `json:"profile_image,omitempty"` // data URI

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether role appears in the stored role set.
func (u *User) HasRole(role UserRole) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Sanitized returns a copy safe to return to clients (no password hash).
func (u *User) Sanitized() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}

// LoginRecord is an append-only entry in the "loginRecords" collection.
// Successive logins of the same user within 60 seconds are collapsed into one
// record.
type LoginRecord struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}
