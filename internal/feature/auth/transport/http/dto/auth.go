// Package dto defines the request and response bodies of the auth endpoints.
package dto

import "time"

// RegisterReq is the body of POST /register.
type RegisterReq struct {
	Username     string `json:"username" form:"username" binding:"required,max=150"`
	Email        string `json:"email" form:"email" binding:"omitempty,email"`
	Password     string `json:"password" form:"password" binding:"required,min=8"`
	Confirmation string `json:"confirmation" form:"confirmation" binding:"required"`
}

// LoginReq is the body of POST /login.
type LoginReq struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RefreshReq is the body of POST /refresh and POST /logout. The token may
// instead arrive in the refresh_token cookie.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// UserRes is the public view of a user.
type UserRes struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// TokenRes is returned by register, login and refresh.
type TokenRes struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	ExpiresIn        int64     `json:"expires_in"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
	User             UserRes   `json:"user"`
}
