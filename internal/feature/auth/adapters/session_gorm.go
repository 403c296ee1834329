package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/mdobak/go-xerrors"
	"gorm.io/gorm"

	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/feature/auth/usecase"
)

// sessionGorm stores refresh sessions in the relational database.
// It is the fallback used when Redis is not available.
type sessionGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm creates a sessionGorm.
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db, now: time.Now}
}

// liveFor restricts a query to unrevoked, unexpired sessions of one user.
func (r *sessionGorm) liveFor(userID uint) func(*gorm.DB) *gorm.DB {
	now := r.now()
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, now)
	}
}

func (r *sessionGorm) Create(ctx context.Context, session *entity.Session) error {
	if err := r.db.WithContext(ctx).Create(sessionModelFrom(session)).Error; err != nil {
		return xerrors.Newf("create session: %w", err)
	}
	return nil
}

func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, xerrors.Newf("find session: %w", err)
	}
	return model.toEntity(), nil
}

// Revoke is a conditional update, so only one of several concurrent callers
// flips the row.
func (r *sessionGorm) Revoke(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", r.now())
	if result.Error != nil {
		return xerrors.Newf("revoke session: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&SessionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return xerrors.Newf("find session: %w", err)
	}
	if count == 0 {
		return usecase.ErrSessionNotFound
	}
	return usecase.ErrSessionRevoked
}

func (r *sessionGorm) RevokeAllByUserID(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", r.now()).Error
	if err != nil {
		return xerrors.Newf("revoke user sessions: %w", err)
	}
	return nil
}

func (r *sessionGorm) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&SessionModel{}).Scopes(r.liveFor(userID)).Count(&count).Error; err != nil {
		return 0, xerrors.Newf("count sessions: %w", err)
	}
	return count, nil
}

// DeleteOldestByUserID removes the oldest live session; it is a no-op when there is none.
func (r *sessionGorm) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	var oldest SessionModel
	err := r.db.WithContext(ctx).
		Scopes(r.liveFor(userID)).
		Order("created_at ASC").
		First(&oldest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return xerrors.Newf("find oldest session: %w", err)
	}

	if err := r.db.WithContext(ctx).Delete(&SessionModel{}, "id = ?", oldest.ID).Error; err != nil {
		return xerrors.Newf("delete session: %w", err)
	}
	return nil
}

func (r *sessionGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", r.now()).Delete(&SessionModel{})
	if result.Error != nil {
		return 0, xerrors.Newf("delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
