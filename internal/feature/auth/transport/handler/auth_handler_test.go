package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/feature/auth/usecase"
	jwtmw "auction_backend/internal/platform/jwt"
)

// mockAuthUsecase is a function-field mock of AuthUsecase.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, in usecase.RegisterInput, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	LoginFunc    func(ctx context.Context, username, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	RefreshFunc  func(ctx context.Context, token string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	LogoutFunc   func(ctx context.Context, token string) error
}

func (m *mockAuthUsecase) Register(ctx context.Context, in usecase.RegisterInput, meta usecase.SessionMeta) (*usecase.TokenPair, error) {
	return m.RegisterFunc(ctx, in, meta)
}

func (m *mockAuthUsecase) Login(ctx context.Context, username, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error) {
	return m.LoginFunc(ctx, username, password, meta)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, token string, meta usecase.SessionMeta) (*usecase.TokenPair, error) {
	return m.RefreshFunc(ctx, token, meta)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func testPair() *usecase.TokenPair {
	return &usecase.TokenPair{
		AccessToken:      "access",
		AccessExpiresIn:  15 * time.Minute,
		RefreshToken:     "refresh",
		RefreshExpiresAt: time.Now().Add(time.Hour),
		User:             &entity.User{ID: 3, Username: "alice"},
	}
}

func newRouter(uc AuthUsecase) *gin.Engine {
	h := NewAuthHandler(uc, false)
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/logout", h.Logout)
	return r
}

func postJSON(r http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	valid := gin.H{"username": "alice", "password": "password123", "confirmation": "password123"}

	tests := []struct {
		name       string
		body       gin.H
		ucErr      error
		wantStatus int
		wantBody   string
	}{
		{"success", valid, nil, http.StatusCreated, ""},
		{"missing username", gin.H{"password": "password123", "confirmation": "password123"}, nil, http.StatusBadRequest,
			`{"error":"validation failed","fields":{"username":"this field is required"}}`},
		{"mismatch", valid, usecase.ErrPasswordMismatch, http.StatusBadRequest,
			`{"error":"validation failed","fields":{"confirmation":"passwords must match"}}`},
		{"taken", valid, usecase.ErrUsernameTaken, http.StatusConflict, `{"error":"username already taken"}`},
		{"internal", valid, errors.New("db down"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAuthUsecase{
				RegisterFunc: func(_ context.Context, in usecase.RegisterInput, _ usecase.SessionMeta) (*usecase.TokenPair, error) {
					assert.Equal(t, "alice", in.Username)
					if tt.ucErr != nil {
						return nil, tt.ucErr
					}
					return testPair(), nil
				},
			}

			w := postJSON(newRouter(uc), "/register", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success sets cookies", func(t *testing.T) {
		uc := &mockAuthUsecase{
			LoginFunc: func(_ context.Context, username, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error) {
				assert.Equal(t, "alice", username)
				assert.Equal(t, "password123", password)
				assert.NotEmpty(t, meta.IPAddress)
				return testPair(), nil
			},
		}

		w := postJSON(newRouter(uc), "/login", gin.H{"username": "alice", "password": "password123"})

		require.Equal(t, http.StatusOK, w.Code)
		var res map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "access", res["access_token"])
		assert.Equal(t, float64(900), res["expires_in"])

		access := cookieNamed(w, jwtmw.AccessTokenCookie)
		require.NotNil(t, access)
		assert.Equal(t, "access", access.Value)
		assert.True(t, access.HttpOnly)
		refresh := cookieNamed(w, RefreshTokenCookie)
		require.NotNil(t, refresh)
		assert.Equal(t, "refresh", refresh.Value)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		uc := &mockAuthUsecase{
			LoginFunc: func(context.Context, string, string, usecase.SessionMeta) (*usecase.TokenPair, error) {
				return nil, usecase.ErrInvalidCredentials
			},
		}

		w := postJSON(newRouter(uc), "/login", gin.H{"username": "alice", "password": "nope"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid username and/or password"}`, w.Body.String())
	})

	t.Run("form encoded body", func(t *testing.T) {
		uc := &mockAuthUsecase{
			LoginFunc: func(_ context.Context, username, _ string, _ usecase.SessionMeta) (*usecase.TokenPair, error) {
				assert.Equal(t, "alice", username)
				return testPair(), nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=alice&password=password123"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()

		newRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("token from cookie", func(t *testing.T) {
		uc := &mockAuthUsecase{
			RefreshFunc: func(_ context.Context, token string, _ usecase.SessionMeta) (*usecase.TokenPair, error) {
				assert.Equal(t, "from-cookie", token)
				return testPair(), nil
			},
		}

		w := postJSON(newRouter(uc), "/refresh", nil, &http.Cookie{Name: RefreshTokenCookie, Value: "from-cookie"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		uc := &mockAuthUsecase{
			RefreshFunc: func(context.Context, string, usecase.SessionMeta) (*usecase.TokenPair, error) {
				return nil, usecase.ErrSessionRevoked
			},
		}

		w := postJSON(newRouter(uc), "/refresh", gin.H{"refresh_token": "old"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		cleared := cookieNamed(w, RefreshTokenCookie)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
	})

	t.Run("no token", func(t *testing.T) {
		w := postJSON(newRouter(&mockAuthUsecase{}), "/refresh", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	var revoked string
	uc := &mockAuthUsecase{
		LogoutFunc: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	}

	w := postJSON(newRouter(uc), "/logout", gin.H{"refresh_token": "tok"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok", revoked)
	assert.NotNil(t, cookieNamed(w, jwtmw.AccessTokenCookie))
}
