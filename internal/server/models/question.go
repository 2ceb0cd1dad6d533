package models

import "time"

// Question is a post owned by the user who created it.
type Question struct {
	ID          string
	Content     string
	OwnerUserID string
	CreatedAt   time.Time
}

// Answer belongs to a question and to the user who posted it.
type Answer struct {
	ID          string
	Content     string
	QuestionID  string
	OwnerUserID string
	CreatedAt   time.Time
}
