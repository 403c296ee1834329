package entity

import "time"

// Comment is a remark left on a listing.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	ListingID uint   `gorm:"index;not null"`
	Body      string `gorm:"size:500;not null"`
	CreatedAt time.Time
}
