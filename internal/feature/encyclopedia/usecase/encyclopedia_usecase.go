package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"auction_backend/internal/feature/encyclopedia/domain"
	"auction_backend/internal/feature/encyclopedia/domain/entity"
)

// SearchResult is either an exact hit or the list of titles containing the query.
type SearchResult struct {
	Query   string
	Exact   *entity.Entry
	Matches []string
}

// encyclopediaUsecase implements the wiki operations over an EntryStorage.
type encyclopediaUsecase struct {
	storage  EntryStorage
	renderer Renderer
	pick     func(n int) int
}

// NewEncyclopediaUsecase creates an encyclopediaUsecase.
func NewEncyclopediaUsecase(storage EntryStorage, renderer Renderer) *encyclopediaUsecase {
	return &encyclopediaUsecase{storage: storage, renderer: renderer, pick: rand.IntN}
}

// List returns every entry title in sorted order.
func (u *encyclopediaUsecase) List(ctx context.Context) ([]string, error) {
	names, err := u.storage.ListFiles(ctx, EntryDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	titles := make([]string, 0, len(names))
	for _, name := range names {
		if title, ok := titleFromFile(name); ok {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)
	return titles, nil
}

// Get returns the entry or domain.ErrEntryNotFound.
func (u *encyclopediaUsecase) Get(ctx context.Context, title string) (*entity.Entry, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	data, err := u.storage.ReadFile(ctx, entryPath(title))
	if errors.Is(err, ErrFileNotFound) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read entry %q: %w", title, err)
	}
	return &entity.Entry{Title: title, Content: string(data)}, nil
}

// Save creates a new entry. An existing entry is left untouched and
// domain.ErrEntryAlreadyExists is returned.
func (u *encyclopediaUsecase) Save(ctx context.Context, title, content string) (*entity.Entry, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	err := u.storage.CreateFile(ctx, entryPath(title), []byte(content))
	if errors.Is(err, ErrFileExists) {
		return nil, domain.ErrEntryAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save entry %q: %w", title, err)
	}
	return &entity.Entry{Title: title, Content: content}, nil
}

// Edit overwrites the entry, creating it if needed.
func (u *encyclopediaUsecase) Edit(ctx context.Context, title, content string) (*entity.Entry, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	if err := u.storage.WriteFile(ctx, entryPath(title), []byte(content)); err != nil {
		return nil, fmt.Errorf("failed to edit entry %q: %w", title, err)
	}
	return &entity.Entry{Title: title, Content: content}, nil
}

// Random returns a uniformly chosen title, or domain.ErrNoEntries.
func (u *encyclopediaUsecase) Random(ctx context.Context) (string, error) {
	titles, err := u.List(ctx)
	if err != nil {
		return "", err
	}
	if len(titles) == 0 {
		return "", domain.ErrNoEntries
	}
	return titles[u.pick(len(titles))], nil
}

// Search returns the entry titled query if there is one, otherwise the
// titles containing query case-insensitively.
func (u *encyclopediaUsecase) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	result := &SearchResult{Query: query, Matches: []string{}}
	if query == "" {
		return result, nil
	}

	if ValidateTitle(query) == nil {
		entry, err := u.Get(ctx, query)
		switch {
		case err == nil:
			result.Exact = entry
			return result, nil
		case !errors.Is(err, domain.ErrEntryNotFound):
			return nil, err
		}
	}

	titles, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	for _, title := range titles {
		if strings.Contains(strings.ToLower(title), needle) {
			result.Matches = append(result.Matches, title)
		}
	}
	return result, nil
}

// Render converts entry content to HTML.
func (u *encyclopediaUsecase) Render(content string) (string, error) {
	html, err := u.renderer.Render([]byte(content))
	if err != nil {
		return "", fmt.Errorf("failed to render entry: %w", err)
	}
	return html, nil
}
