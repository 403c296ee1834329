// Package markdown renders entry bodies with goldmark.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"auction_backend/internal/feature/encyclopedia/usecase"
)

type goldmarkRenderer struct {
	md goldmark.Markdown
}

var _ usecase.Renderer = (*goldmarkRenderer)(nil)

// NewRenderer returns a GitHub-flavoured Markdown renderer. Raw HTML in the
// source is omitted from the output.
func NewRenderer() *goldmarkRenderer {
	return &goldmarkRenderer{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

func (r *goldmarkRenderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
