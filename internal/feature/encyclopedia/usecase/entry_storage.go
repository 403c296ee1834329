// Package usecase implements the encyclopedia's business logic.
package usecase

import (
	"context"
	"errors"
)

var (
	// ErrFileNotFound is returned by EntryStorage when a path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrFileExists is returned by EntryStorage.CreateFile when the path is taken.
	ErrFileExists = errors.New("file already exists")
)

// EntryStorage abstracts the file store holding entry bodies.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type EntryStorage interface {
	// ListFiles returns the base names of the files directly under dir.
	ListFiles(ctx context.Context, dir string) ([]string, error)

	// ReadFile returns ErrFileNotFound when path does not exist.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// CreateFile writes data only if path does not exist yet, in one atomic
	// step; otherwise it returns ErrFileExists.
	CreateFile(ctx context.Context, path string, data []byte) error

	// WriteFile creates or overwrites path.
	WriteFile(ctx context.Context, path string, data []byte) error
}

// Renderer converts Markdown to HTML.
type Renderer interface {
	Render(markdown []byte) (string, error)
}
