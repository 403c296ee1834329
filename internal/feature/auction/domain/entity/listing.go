// Package entity defines the auction's domain entities. They double as GORM models.
package entity

import "time"

// NoWinner is the WinnerID of a listing without a winner.
const NoWinner int64 = -1

// DefaultCategory is assigned to listings created without a category.
const DefaultCategory = "Other"

// Listing is an item offered for auction.
type Listing struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:64;not null"`
	Description string `gorm:"size:500;not null"`

	// StartingBid is the reserve; every bid must exceed it.
	StartingBid int64 `gorm:"not null"`

	// CurrentBid is the highest accepted amount, StartingBid while there are no bids.
	CurrentBid int64 `gorm:"not null"`

	ImageURL string `gorm:"size:200"`

	// OwnerID is the user who created the listing.
	OwnerID uint `gorm:"column:user_id;index;not null"`

	Active bool `gorm:"index:idx_listings_active_created,priority:1;not null;default:true"`

	// WinnerID is the winning bidder once closed, NoWinner otherwise.
	WinnerID int64 `gorm:"not null;default:-1"`

	Category string `gorm:"size:64;index;not null;default:Other"`

	CreatedAt time.Time `gorm:"index:idx_listings_active_created,priority:2"`
	UpdatedAt time.Time
}

// HasWinner reports whether the listing was closed with at least one bid.
func (l *Listing) HasWinner() bool {
	return l.WinnerID != NoWinner
}

// IsOwnedBy reports whether userID created the listing.
func (l *Listing) IsOwnedBy(userID uint) bool {
	return userID != 0 && l.OwnerID == userID
}

// IsWonBy reports whether userID won the closed listing.
func (l *Listing) IsWonBy(userID uint) bool {
	return !l.Active && userID != 0 && l.WinnerID == int64(userID)
}
