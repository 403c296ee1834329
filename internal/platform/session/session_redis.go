// Package session stores refresh sessions in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/redis/go-redis/v9"

	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/feature/auth/usecase"
)

// DefaultPrefix namespaces session keys.
const DefaultPrefix = "auction:session"

// record is the JSON stored under a session key.
type record struct {
	UserID    uint       `json:"user_id"`
	UserAgent string     `json:"user_agent"`
	IPAddress string     `json:"ip"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// SessionRedis implements usecase.SessionRepository on Redis.
// Each session is a string key expiring with the session; a per-user sorted
// set scored by creation time indexes the user's sessions.
type SessionRedis struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a SessionRedis. An empty prefix uses DefaultPrefix.
func NewSessionRedis(client redis.UniversalClient, prefix string) *SessionRedis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SessionRedis{client: client, prefix: prefix, now: time.Now}
}

func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *SessionRedis) userKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

func (r *SessionRedis) Create(ctx context.Context, s *entity.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return xerrors.Newf("session %s already expired", s.ID)
	}

	data, err := json.Marshal(record{
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	})
	if err != nil {
		return xerrors.Newf("marshal session: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(s.ID), data, ttl)
		pipe.ZAdd(ctx, r.userKey(s.UserID), redis.Z{Score: float64(s.CreatedAt.UnixNano()), Member: s.ID})
		return nil
	})
	if err != nil {
		return xerrors.Newf("store session: %w", err)
	}
	return nil
}

func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, xerrors.Newf("get session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, xerrors.Newf("unmarshal session: %w", err)
	}
	return &entity.Session{
		ID:        id,
		UserID:    rec.UserID,
		UserAgent: rec.UserAgent,
		IPAddress: rec.IPAddress,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
		RevokedAt: rec.RevokedAt,
	}, nil
}

// maxRevokeAttempts bounds the optimistic-lock retries in Revoke.
const maxRevokeAttempts = 5

// Revoke marks the session revoked. The key keeps its remaining TTL so that
// reuse of the token is still detectable until it would have expired.
// The read and the write run under WATCH, so only one concurrent caller
// flips a session; the others get ErrSessionRevoked.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	key := r.sessionKey(id)
	revoke := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return usecase.ErrSessionNotFound
		}
		if err != nil {
			return xerrors.Newf("get session: %w", err)
		}

		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			return xerrors.Newf("unmarshal session: %w", err)
		}
		if rec.RevokedAt != nil {
			return usecase.ErrSessionRevoked
		}
		now := r.now()
		rec.RevokedAt = &now
		data, err = json.Marshal(rec)
		if err != nil {
			return xerrors.Newf("marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, redis.KeepTTL)
			return nil
		})
		return err
	}

	for range maxRevokeAttempts {
		err := r.client.Watch(ctx, revoke, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, usecase.ErrSessionNotFound) && !errors.Is(err, usecase.ErrSessionRevoked) {
			return xerrors.Newf("revoke session: %w", err)
		}
		return err
	}
	return xerrors.Newf("revoke session %s: too much contention", id)
}

func (r *SessionRedis) RevokeAllByUserID(ctx context.Context, userID uint) error {
	ids, err := r.client.ZRange(ctx, r.userKey(userID), 0, -1).Result()
	if err != nil {
		return xerrors.Newf("list user sessions: %w", err)
	}
	for _, id := range ids {
		err := r.Revoke(ctx, id)
		if err != nil && !errors.Is(err, usecase.ErrSessionNotFound) && !errors.Is(err, usecase.ErrSessionRevoked) {
			return err
		}
	}
	return nil
}

// live returns the user's valid sessions oldest first, dropping index
// members whose session key has expired.
func (r *SessionRedis) live(ctx context.Context, userID uint) ([]*entity.Session, error) {
	ids, err := r.client.ZRange(ctx, r.userKey(userID), 0, -1).Result()
	if err != nil {
		return nil, xerrors.Newf("list user sessions: %w", err)
	}

	var sessions []*entity.Session
	for _, id := range ids {
		s, err := r.FindByID(ctx, id)
		if errors.Is(err, usecase.ErrSessionNotFound) {
			r.client.ZRem(ctx, r.userKey(userID), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.RevokedAt == nil && s.ExpiresAt.After(r.now()) {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

func (r *SessionRedis) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	sessions, err := r.live(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	sessions, err := r.live(ctx, userID)
	if err != nil || len(sessions) == 0 {
		return err
	}

	oldest := sessions[0].ID
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.sessionKey(oldest))
		pipe.ZRem(ctx, r.userKey(userID), oldest)
		return nil
	})
	if err != nil {
		return xerrors.Newf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires session keys on its own and stale
// index members are dropped lazily.
func (r *SessionRedis) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
