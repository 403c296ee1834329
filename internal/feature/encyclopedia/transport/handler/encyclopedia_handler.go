// Package handler provides the HTTP handlers of the encyclopedia feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction_backend/internal/feature/encyclopedia/domain"
	"auction_backend/internal/feature/encyclopedia/domain/entity"
	"auction_backend/internal/feature/encyclopedia/transport/http/dto"
	"auction_backend/internal/feature/encyclopedia/usecase"
	"auction_backend/internal/platform/http/respond"
)

// EncyclopediaUsecase defines the wiki operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type EncyclopediaUsecase interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, title string) (*entity.Entry, error)
	Save(ctx context.Context, title, content string) (*entity.Entry, error)
	Edit(ctx context.Context, title, content string) (*entity.Entry, error)
	Random(ctx context.Context) (string, error)
	Search(ctx context.Context, query string) (*usecase.SearchResult, error)
	Render(content string) (string, error)
}

// EncyclopediaHandler serves the /wiki, /search and /random routes.
type EncyclopediaHandler struct {
	wiki EncyclopediaUsecase
}

// NewEncyclopediaHandler creates an EncyclopediaHandler.
func NewEncyclopediaHandler(wiki EncyclopediaUsecase) *EncyclopediaHandler {
	return &EncyclopediaHandler{wiki: wiki}
}

// List handles GET /wiki.
func (h *EncyclopediaHandler) List(c *gin.Context) {
	titles, err := h.wiki.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EntryListRes{Entries: titles})
}

// Get handles GET /wiki/:title.
func (h *EncyclopediaHandler) Get(c *gin.Context) {
	entry, err := h.wiki.Get(c.Request.Context(), c.Param("title"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeEntry(c, http.StatusOK, entry)
}

// Create handles POST /wiki.
func (h *EncyclopediaHandler) Create(c *gin.Context) {
	var req dto.CreateEntryReq
	if err := c.ShouldBind(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	entry, err := h.wiki.Save(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	slog.Info("entry created", "title", entry.Title)
	h.writeEntry(c, http.StatusCreated, entry)
}

// Edit handles PUT /wiki/:title.
func (h *EncyclopediaHandler) Edit(c *gin.Context) {
	var req dto.EditEntryReq
	if err := c.ShouldBind(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	entry, err := h.wiki.Edit(c.Request.Context(), c.Param("title"), req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	slog.Info("entry edited", "title", entry.Title)
	h.writeEntry(c, http.StatusOK, entry)
}

// Search handles GET /search?q=.
func (h *EncyclopediaHandler) Search(c *gin.Context) {
	result, err := h.wiki.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}

	res := dto.SearchRes{Query: result.Query, Matches: result.Matches}
	if result.Exact != nil {
		entry, err := h.toRes(result.Exact)
		if err != nil {
			h.fail(c, err)
			return
		}
		res.Entry = entry
		res.Matches = nil
	}
	c.JSON(http.StatusOK, res)
}

// Random handles GET /random.
func (h *EncyclopediaHandler) Random(c *gin.Context) {
	ctx := c.Request.Context()
	title, err := h.wiki.Random(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	entry, err := h.wiki.Get(ctx, title)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeEntry(c, http.StatusOK, entry)
}

func (h *EncyclopediaHandler) toRes(entry *entity.Entry) (*dto.EntryRes, error) {
	html, err := h.wiki.Render(entry.Content)
	if err != nil {
		return nil, err
	}
	return &dto.EntryRes{Title: entry.Title, Content: entry.Content, HTML: html}, nil
}

func (h *EncyclopediaHandler) writeEntry(c *gin.Context, status int, entry *entity.Entry) {
	res, err := h.toRes(entry)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, res)
}

// fail maps encyclopedia errors to HTTP responses.
func (h *EncyclopediaHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound), errors.Is(err, domain.ErrNoEntries):
		respond.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEntryAlreadyExists):
		respond.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidTitle):
		respond.FieldErrors(c, map[string]string{"title": err.Error()})
	default:
		respond.ServerError(c, err)
	}
}
