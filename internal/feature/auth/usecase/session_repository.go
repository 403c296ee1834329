package usecase

import (
	"context"

	"auction_backend/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for refresh sessions.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its refresh token value.
	// It returns ErrSessionNotFound when no such session is stored.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke marks a live session as revoked. It returns ErrSessionNotFound
	// for an unknown ID and ErrSessionRevoked when the session was already
	// revoked, so of two concurrent calls exactly one succeeds.
	Revoke(ctx context.Context, id string) error

	// RevokeAllByUserID revokes every live session of a user.
	RevokeAllByUserID(ctx context.Context, userID uint) error

	// CountByUserID returns the number of live sessions for a user.
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID deletes the oldest live session for a user.
	DeleteOldestByUserID(ctx context.Context, userID uint) error

	// DeleteExpired removes expired sessions and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
