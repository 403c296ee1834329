package adapters

import (
	"context"
	"errors"

	"github.com/mdobak/go-xerrors"
	"gorm.io/gorm"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"
)

type bidGorm struct {
	db *gorm.DB
}

var _ usecase.BidRepository = (*bidGorm)(nil)

// NewBidGorm creates a bidGorm.
func NewBidGorm(db *gorm.DB) *bidGorm {
	return &bidGorm{db: db}
}

func (r *bidGorm) Create(ctx context.Context, bid *entity.Bid) error {
	if err := r.db.WithContext(ctx).Create(bid).Error; err != nil {
		return xerrors.Newf("create bid: %w", err)
	}
	return nil
}

// Latest orders by id rather than amount; accepted bids only ever increase.
func (r *bidGorm) Latest(ctx context.Context, listingID uint) (*entity.Bid, error) {
	var b entity.Bid
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("id DESC").
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoBids
		}
		return nil, xerrors.Newf("latest bid: %w", err)
	}
	return &b, nil
}

func (r *bidGorm) ListByListing(ctx context.Context, listingID uint) ([]entity.Bid, error) {
	var bids []entity.Bid
	if err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Order("id").Find(&bids).Error; err != nil {
		return nil, xerrors.Newf("list bids: %w", err)
	}
	return bids, nil
}

func (r *bidGorm) CountByListing(ctx context.Context, listingID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Bid{}).Where("listing_id = ?", listingID).Count(&n).Error; err != nil {
		return 0, xerrors.Newf("count bids: %w", err)
	}
	return n, nil
}

func (r *bidGorm) DeleteByListing(ctx context.Context, listingID uint) error {
	if err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&entity.Bid{}).Error; err != nil {
		return xerrors.Newf("delete bids: %w", err)
	}
	return nil
}
