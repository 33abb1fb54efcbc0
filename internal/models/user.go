// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // Never serialize the hash
	Avatar       string      `json:"avatar"`
	Username     string      `json:"username"`
	Likes        []uuid.UUID `json:"likes"` // IDs of posts this user has liked
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// HasLiked reports whether postID is in the user's liked set.
func (u *User) HasLiked(postID uuid.UUID) bool {
	for _, id := range u.Likes {
		if id == postID {
			return true
		}
	}
	return false
}

// Author is the public projection of a User embedded in post responses.
type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
}
