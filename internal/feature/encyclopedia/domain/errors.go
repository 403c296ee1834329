// Package domain holds the encyclopedia's domain-level errors.
package domain

import "errors"

var (
	// ErrEntryNotFound is the normal "no such entry" signal.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEntryAlreadyExists is returned when saving a title that is already taken.
	ErrEntryAlreadyExists = errors.New("an entry with this title already exists")

	// ErrInvalidTitle is returned for titles that cannot be mapped to a file name.
	ErrInvalidTitle = errors.New("invalid title")

	// ErrNoEntries is returned by random selection on an empty encyclopedia.
	ErrNoEntries = errors.New("the encyclopedia has no entries")
)
