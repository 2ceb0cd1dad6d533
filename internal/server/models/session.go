package models

import "time"

// SessionLifetime is the fixed validity window of a session.
const SessionLifetime = 8 * time.Hour

// Session is one successful sign-in. LoggedOutAt is set at most once.
type Session struct {
	Token       string
	UserID      string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	LoggedOutAt *time.Time
}

// LoggedOut reports whether the session was explicitly signed out.
func (s *Session) LoggedOut() bool {
	return s.LoggedOutAt != nil
}

// Expired reports whether now is at or past ExpiresAt.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Live reports whether the session can still authorize requests.
func (s *Session) Live(now time.Time) bool {
	return !s.LoggedOut() && !s.Expired(now)
}
