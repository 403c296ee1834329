package usecase

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"auction_backend/internal/feature/encyclopedia/domain"
)

const (
	// EntryDir is the directory entries live in.
	EntryDir = "entries"

	entryExt = ".md"

	// MaxTitleLength is the longest accepted title, in characters.
	MaxTitleLength = 200

	// MaxContentLength is the longest accepted body, in characters.
	MaxContentLength = 10000
)

// ValidateTitle rejects titles that are empty, too long, or could escape
// the entry directory once turned into a file name.
func ValidateTitle(title string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: title must not be empty", domain.ErrInvalidTitle)
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidTitle, MaxTitleLength)
	case strings.ContainsAny(title, "/\\\x00"):
		return fmt.Errorf("%w: title must not contain path separators", domain.ErrInvalidTitle)
	case strings.HasPrefix(title, "."):
		return fmt.Errorf("%w: title must not start with a dot", domain.ErrInvalidTitle)
	case strings.Contains(title, ".."):
		return fmt.Errorf("%w: title must not contain \"..\"", domain.ErrInvalidTitle)
	}
	return nil
}

// entryPath maps a validated title to its storage path.
func entryPath(title string) string {
	return path.Join(EntryDir, title+entryExt)
}

// titleFromFile returns the title for an entry file name, or false for
// files that are not entries.
func titleFromFile(name string) (string, bool) {
	if !strings.HasSuffix(name, entryExt) {
		return "", false
	}
	title := strings.TrimSuffix(name, entryExt)
	return title, title != ""
}
