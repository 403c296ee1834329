// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a registered account. Listings, bids, comments and watchlist
// entries reference it by ID.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Username is the login name, unique across all users.
	Username string `gorm:"uniqueIndex;size:150;not null"`

	Email string `gorm:"size:255"`

	// Password is the bcrypt hash, never the plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
