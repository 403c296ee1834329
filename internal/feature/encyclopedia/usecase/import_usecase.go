package usecase

import (
	"context"
	"log/slog"
	"path"
	"sort"

	"auction_backend/internal/feature/encyclopedia/domain/entity"
	"auction_backend/internal/shared/ratelimiter"
)

// EntryEditor is the write side of the encyclopedia used by imports.
type EntryEditor interface {
	Edit(ctx context.Context, title, content string) (*entity.Entry, error)
}

// ImportReport summarises an import run.
type ImportReport struct {
	Imported int
	Skipped  int
	Failed   int
}

// ImportUsecase copies Markdown files from a source store into the encyclopedia.
type ImportUsecase struct {
	source      EntryStorage
	target      EntryEditor
	rateLimiter ratelimiter.Limiter
}

// NewImportUsecase creates an ImportUsecase. source is read from its root directory.
func NewImportUsecase(source EntryStorage, target EntryEditor, rateLimiter ratelimiter.Limiter) *ImportUsecase {
	return &ImportUsecase{source: source, target: target, rateLimiter: rateLimiter}
}

// ImportAll edits every *.md file of the source into the encyclopedia.
// A file that cannot be read or saved is logged and the run continues;
// only listing the source or a cancelled context stops it.
func (iu *ImportUsecase) ImportAll(ctx context.Context) (ImportReport, error) {
	var report ImportReport

	names, err := iu.source.ListFiles(ctx, ".")
	if err != nil {
		return report, err
	}
	sort.Strings(names)

	for _, name := range names {
		title, ok := titleFromFile(name)
		if !ok || ValidateTitle(title) != nil {
			slog.Warn("skipping file", "file", name)
			report.Skipped++
			continue
		}

		if err := iu.rateLimiter.Wait(ctx); err != nil {
			return report, err
		}

		if err := iu.importOne(ctx, name, title); err != nil {
			slog.Error("failed to import entry", "file", name, "error", err)
			report.Failed++
			continue
		}
		report.Imported++
	}
	return report, nil
}

func (iu *ImportUsecase) importOne(ctx context.Context, name, title string) error {
	data, err := iu.source.ReadFile(ctx, path.Join(".", name))
	if err != nil {
		return err
	}
	_, err = iu.target.Edit(ctx, title, string(data))
	return err
}
