// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrPasswordMismatch is returned when the password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords must match")

	// ErrPasswordTooShort is returned for passwords below minPasswordLength.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid username and/or password")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when a revoked refresh token is presented.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when an expired refresh token is presented.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidRefreshToken is returned when a refresh token is empty or malformed.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
