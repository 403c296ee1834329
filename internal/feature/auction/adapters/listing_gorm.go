package adapters

import (
	"context"
	"errors"

	"github.com/mdobak/go-xerrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"
)

type listingGorm struct {
	db *gorm.DB
}

var _ usecase.ListingRepository = (*listingGorm)(nil)

// NewListingGorm creates a listingGorm.
func NewListingGorm(db *gorm.DB) *listingGorm {
	return &listingGorm{db: db}
}

func (r *listingGorm) Create(ctx context.Context, listing *entity.Listing) error {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return xerrors.Newf("create listing: %w", err)
	}
	return nil
}

func (r *listingGorm) FindByID(ctx context.Context, id uint) (*entity.Listing, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate issues SELECT ... FOR UPDATE. SQLite has no row locks
// and ignores the clause; its single connection serialises writers instead.
func (r *listingGorm) FindByIDForUpdate(ctx context.Context, id uint) (*entity.Listing, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *listingGorm) find(q *gorm.DB, id uint) (*entity.Listing, error) {
	var l entity.Listing
	if err := q.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, xerrors.Newf("find listing: %w", err)
	}
	return &l, nil
}

func (r *listingGorm) ListActive(ctx context.Context, category string) ([]entity.Listing, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}

	var listings []entity.Listing
	if err := q.Order("created_at DESC").Order("id DESC").Find(&listings).Error; err != nil {
		return nil, xerrors.Newf("list listings: %w", err)
	}
	return listings, nil
}

// Categories groups case-insensitively, matching ListActive's filter; each
// group is reported under its alphabetically first spelling.
func (r *listingGorm) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&entity.Listing{}).
		Select("MIN(category)").
		Where("active = ?", true).
		Group("LOWER(category)").
		Order("LOWER(category)").
		Scan(&categories).Error
	if err != nil {
		return nil, xerrors.Newf("list categories: %w", err)
	}
	return categories, nil
}

func (r *listingGorm) UpdateState(ctx context.Context, listing *entity.Listing) error {
	result := r.db.WithContext(ctx).
		Model(listing).
		Select("current_bid", "active", "winner_id").
		Updates(listing)
	if result.Error != nil {
		return xerrors.Newf("update listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *listingGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Listing{}, id)
	if result.Error != nil {
		return xerrors.Newf("delete listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}
