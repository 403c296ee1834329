package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction_backend/internal/feature/encyclopedia/domain/entity"
)

type countingLimiter struct {
	calls int
	err   error
}

func (l *countingLimiter) Wait(context.Context) error {
	l.calls++
	return l.err
}

type failingEditor struct {
	inner EntryEditor
	fail  string
}

func (f failingEditor) Edit(ctx context.Context, title, content string) (*entity.Entry, error) {
	if title == f.fail {
		return nil, errors.New("write failed")
	}
	return f.inner.Edit(ctx, title, content)
}

func TestImportUsecase_ImportAll(t *testing.T) {
	source := newMemoryStorage(map[string]string{
		"Go.md":     "# Go",
		"Rust.md":   "# Rust",
		"Broken.md": "# Broken",
		"README":    "not an entry",
		"..md":      "bad title",
	})
	target := newMemoryStorage(map[string]string{"entries/Go.md": "old"})
	wiki := NewEncyclopediaUsecase(target, upperRenderer{})
	limiter := &countingLimiter{}

	iu := NewImportUsecase(source, failingEditor{inner: wiki, fail: "Broken"}, limiter)
	report, err := iu.ImportAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ImportReport{Imported: 2, Skipped: 2, Failed: 1}, report)
	assert.Equal(t, 3, limiter.calls)

	got, err := wiki.Get(context.Background(), "Go")
	require.NoError(t, err)
	assert.Equal(t, "# Go", got.Content, "import overwrites existing entries")
	_, err = wiki.Get(context.Background(), "Rust")
	assert.NoError(t, err)
}

func TestImportUsecase_StopsWhenCancelled(t *testing.T) {
	source := newMemoryStorage(map[string]string{"Go.md": "# Go"})
	target := newMemoryStorage(nil)
	limiter := &countingLimiter{err: context.Canceled}

	iu := NewImportUsecase(source, NewEncyclopediaUsecase(target, upperRenderer{}), limiter)
	_, err := iu.ImportAll(context.Background())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, target.files)
}
