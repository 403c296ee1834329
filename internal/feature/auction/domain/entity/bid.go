package entity

import "time"

// Bid is an accepted offer on a listing. Bids are only ever appended, so
// the latest bid of a listing is also its highest.
type Bid struct {
	ID        uint  `gorm:"primaryKey"`
	ListingID uint  `gorm:"index:idx_bids_listing_id,priority:1;not null"`
	UserID    uint  `gorm:"index;not null"`
	Amount    int64 `gorm:"not null"`
	CreatedAt time.Time
}
