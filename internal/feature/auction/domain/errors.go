// Package domain holds the auction's domain-level errors.
package domain

import (
	"errors"
	"strings"
)

var (
	// ErrListingNotFound is returned when no listing has the requested id.
	ErrListingNotFound = errors.New("listing not found")

	// ErrListingClosed is returned when bidding on or closing an inactive listing.
	ErrListingClosed = errors.New("listing is closed")

	// ErrBidTooLow is returned when a bid does not exceed both the starting and the current bid.
	ErrBidTooLow = errors.New("bid must be greater than the starting bid and the current bid")

	// ErrInvalidBid is returned for non-positive amounts.
	ErrInvalidBid = errors.New("bid amount must be a positive integer")

	// ErrNotOwner is returned when someone other than the owner closes or deletes a listing.
	ErrNotOwner = errors.New("only the owner can do this")

	// ErrNoBids is returned when a listing has no bids.
	ErrNoBids = errors.New("no bids")

	// ErrAuthRequired is returned for anonymous callers of operations that need a user.
	ErrAuthRequired = errors.New("authentication required")
)

// FieldError reports a request field that is empty once surrounding
// whitespace is removed.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func blank(field string) error {
	return &FieldError{Field: field, Message: "must not be blank"}
}

// RequireText trims value and returns a FieldError naming field when nothing is left.
func RequireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", blank(field)
	}
	return value, nil
}
