package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"auction_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum number of characters in a password.
	minPasswordLength = 8

	// maxSessionsPerUser caps live refresh sessions; the oldest is evicted.
	maxSessionsPerUser = 5

	refreshTokenBytes = 32
)

// dummyHash is compared against when the user does not exist so that a
// failed login costs the same whether or not the username is registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrUsernameTaken for a duplicate username.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator issues access tokens.
type JWTGenerator interface {
	GenerateToken(userID uint, username string) (string, error)
	Expiration() time.Duration
}

// RegisterInput is the validated registration request.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Confirmation string
}

// SessionMeta describes the client a session is issued to.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// TokenPair is returned on register, login and refresh.
type TokenPair struct {
	AccessToken      string
	AccessExpiresIn  time.Duration
	RefreshToken     string
	RefreshExpiresAt time.Time
	User             *entity.User
}

// authUsecase implements registration, login and refresh-session handling.
type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	jwt        JWTGenerator
	refreshTTL time.Duration
	now        func() time.Time
}

// NewAuthUsecase creates an authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator, refreshTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		jwt:        jwtGenerator,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// validatePassword checks the password meets the length requirement.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// CreateUser stores a new user with a bcrypt-hashed password.
func (u *authUsecase) CreateUser(ctx context.Context, username, email, password string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates the account and signs the new user in.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput, meta SessionMeta) (*TokenPair, error) {
	if in.Password != in.Confirmation {
		return nil, ErrPasswordMismatch
	}

	user, err := u.CreateUser(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return u.issue(ctx, user, meta)
}

// Login authenticates by username and password and issues a token pair.
// A bcrypt comparison runs even for unknown usernames.
func (u *authUsecase) Login(ctx context.Context, username, password string, meta SessionMeta) (*TokenPair, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issue(ctx, user, meta)
}

// Refresh exchanges a live refresh token for a new pair and revokes the old one.
// Presenting an already revoked token revokes every session of its user.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta SessionMeta) (*TokenPair, error) {
	if !validRefreshToken(refreshToken) {
		return nil, ErrInvalidRefreshToken
	}

	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, u.reused(ctx, session.UserID)
	}
	if session.ExpiresAt.Before(u.now()) {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// Only the caller whose Revoke flips the session may issue a new pair.
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		if errors.Is(err, ErrSessionRevoked) {
			return nil, u.reused(ctx, session.UserID)
		}
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	return u.issue(ctx, user, meta)
}

// reused handles a refresh token presented after its rotation: every
// session of the user is revoked.
func (u *authUsecase) reused(ctx context.Context, userID uint) error {
	slog.Warn("revoked refresh token reused, revoking all sessions", "user_id", userID)
	if err := u.sessions.RevokeAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return ErrSessionRevoked
}

// Logout revokes the session behind refreshToken. Unknown tokens are ignored.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if !validRefreshToken(refreshToken) {
		return nil
	}
	err := u.sessions.Revoke(ctx, refreshToken)
	if err != nil && !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionRevoked) {
		return err
	}
	return nil
}

// PruneSessions deletes expired sessions.
func (u *authUsecase) PruneSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}

// issue creates a refresh session (evicting the oldest over the cap) and an access token.
func (u *authUsecase) issue(ctx context.Context, user *entity.User, meta SessionMeta) (*TokenPair, error) {
	access, err := u.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	for ; count >= maxSessionsPerUser; count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to evict session: %w", err)
		}
	}

	token, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	now := u.now()
	session := &entity.Session{
		ID:        token,
		UserID:    user.ID,
		UserAgent: truncate(meta.UserAgent, 512),
		IPAddress: truncate(meta.IPAddress, 45),
		CreatedAt: now,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &TokenPair{
		AccessToken:      access,
		AccessExpiresIn:  u.jwt.Expiration(),
		RefreshToken:     token,
		RefreshExpiresAt: session.ExpiresAt,
		User:             user,
	}, nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func validRefreshToken(token string) bool {
	if len(token) != refreshTokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
