package adapters

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"
)

type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistGorm creates a watchlistGorm.
func NewWatchlistGorm(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

func (r *watchlistGorm) Add(ctx context.Context, userID, listingID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.WatchlistEntry{UserID: userID, ListingID: listingID}).Error
	if err != nil {
		return xerrors.Newf("add to watchlist: %w", err)
	}
	return nil
}

func (r *watchlistGorm) Remove(ctx context.Context, userID, listingID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&entity.WatchlistEntry{}).Error
	if err != nil {
		return xerrors.Newf("remove from watchlist: %w", err)
	}
	return nil
}

func (r *watchlistGorm) Contains(ctx context.Context, userID, listingID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entity.WatchlistEntry{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&n).Error
	if err != nil {
		return false, xerrors.Newf("check watchlist: %w", err)
	}
	return n > 0, nil
}

func (r *watchlistGorm) ActiveListings(ctx context.Context, userID uint) ([]entity.Listing, error) {
	var listings []entity.Listing
	err := r.db.WithContext(ctx).
		Joins("JOIN watchlist_entries w ON w.listing_id = listings.id").
		Where("w.user_id = ? AND listings.active = ?", userID, true).
		Order("w.created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, xerrors.Newf("list watchlist: %w", err)
	}
	return listings, nil
}

func (r *watchlistGorm) DeleteByListing(ctx context.Context, listingID uint) error {
	if err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&entity.WatchlistEntry{}).Error; err != nil {
		return xerrors.Newf("delete watchlist entries: %w", err)
	}
	return nil
}
