package adapters

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"gorm.io/gorm"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"
)

type commentGorm struct {
	db *gorm.DB
}

var _ usecase.CommentRepository = (*commentGorm)(nil)

// NewCommentGorm creates a commentGorm.
func NewCommentGorm(db *gorm.DB) *commentGorm {
	return &commentGorm{db: db}
}

func (r *commentGorm) Create(ctx context.Context, comment *entity.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return xerrors.Newf("create comment: %w", err)
	}
	return nil
}

func (r *commentGorm) ListByListing(ctx context.Context, listingID uint) ([]entity.Comment, error) {
	var comments []entity.Comment
	if err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Order("id").Find(&comments).Error; err != nil {
		return nil, xerrors.Newf("list comments: %w", err)
	}
	return comments, nil
}

func (r *commentGorm) DeleteByListing(ctx context.Context, listingID uint) error {
	if err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&entity.Comment{}).Error; err != nil {
		return xerrors.Newf("delete comments: %w", err)
	}
	return nil
}
