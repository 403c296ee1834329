package entity

import "time"

// WatchlistEntry links a user to a listing they follow. The pair is the key,
// so a listing appears at most once on a user's watchlist.
type WatchlistEntry struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	ListingID uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (WatchlistEntry) TableName() string {
	return "watchlist_entries"
}
