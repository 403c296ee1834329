// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"auction_backend/internal/feature/auth/transport/http/dto"
	"auction_backend/internal/feature/auth/usecase"
	jwtmw "auction_backend/internal/platform/jwt"
	"auction_backend/internal/platform/http/respond"
)

// RefreshTokenCookie holds the refresh token for browser clients.
const RefreshTokenCookie = "refresh_token"

// AuthUsecase defines the auth operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	Login(ctx context.Context, username, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler serves /register, /login, /refresh and /logout.
type AuthHandler struct {
	auth         AuthUsecase
	secureCookie bool
}

// NewAuthHandler creates an AuthHandler. secureCookie sets the Secure flag on
// the token cookies and should be on outside development.
func NewAuthHandler(auth AuthUsecase, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie}
}

func meta(c *gin.Context) usecase.SessionMeta {
	return usecase.SessionMeta{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

// Register creates an account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	pair, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	}, meta(c))
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrPasswordMismatch):
		respond.FieldErrors(c, map[string]string{"confirmation": err.Error()})
		return
	case errors.Is(err, usecase.ErrPasswordTooShort):
		respond.FieldErrors(c, map[string]string{"password": err.Error()})
		return
	case errors.Is(err, usecase.ErrUsernameTaken):
		slog.Warn("registration rejected", "username", req.Username, "remote_addr", c.ClientIP())
		respond.Error(c, http.StatusConflict, err.Error())
		return
	default:
		respond.ServerError(c, err)
		return
	}

	slog.Info("user registered", "user_id", pair.User.ID, "username", pair.User.Username)
	h.writeTokens(c, http.StatusCreated, pair)
}

// Login authenticates with username and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, meta(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
			respond.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		respond.ServerError(c, err)
		return
	}

	slog.Info("user logged in", "user_id", pair.User.ID, "remote_addr", c.ClientIP())
	h.writeTokens(c, http.StatusOK, pair)
}

// Refresh rotates the refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := h.refreshToken(c)
	if token == "" {
		respond.Error(c, http.StatusUnauthorized, usecase.ErrInvalidRefreshToken.Error())
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), token, meta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRefreshToken),
			errors.Is(err, usecase.ErrSessionNotFound),
			errors.Is(err, usecase.ErrSessionRevoked),
			errors.Is(err, usecase.ErrSessionExpired),
			errors.Is(err, usecase.ErrUserNotFound):
			h.clearCookies(c)
			respond.Error(c, http.StatusUnauthorized, err.Error())
		default:
			respond.ServerError(c, err)
		}
		return
	}
	h.writeTokens(c, http.StatusOK, pair)
}

// Logout revokes the refresh session and clears the cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), h.refreshToken(c)); err != nil {
		respond.ServerError(c, err)
		return
	}
	h.clearCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// refreshToken reads the token from the body, falling back to the cookie.
func (h *AuthHandler) refreshToken(c *gin.Context) string {
	var req dto.RefreshReq
	if err := c.ShouldBind(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func (h *AuthHandler) writeTokens(c *gin.Context, status int, pair *usecase.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.AccessTokenCookie, pair.AccessToken, int(pair.AccessExpiresIn.Seconds()), "/", "", h.secureCookie, true)
	c.SetCookie(RefreshTokenCookie, pair.RefreshToken, int(time.Until(pair.RefreshExpiresAt).Seconds()), "/", "", h.secureCookie, true)

	c.JSON(status, dto.TokenRes{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		ExpiresIn:        int64(pair.AccessExpiresIn.Seconds()),
		RefreshExpiresAt: pair.RefreshExpiresAt,
		User: dto.UserRes{
			ID:       pair.User.ID,
			Username: pair.User.Username,
			Email:    pair.User.Email,
		},
	})
}

func (h *AuthHandler) clearCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", h.secureCookie, true)
}
