// Package models defines the server-side records persisted by repositories.
package models

import "time"

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile holds the user-editable, non-security fields of an account.
type Profile struct {
	FirstName     string
	LastName      string
	UserName      string
	Email         string
	Country       string
	AboutMe       string
	DOB           string
	ContactNumber string
}

// User is a registered account. Salt and PasswordHash form the credential;
// the raw password is never stored.
type User struct {
	ID string
	Profile
	Role         string
	Salt         string
	PasswordHash string
	CreatedAt    time.Time
}
