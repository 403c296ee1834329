// Package handler provides the HTTP handlers of the auction feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/transport/http/dto"
	"auction_backend/internal/feature/auction/usecase"
	"auction_backend/internal/platform/http/respond"
	"auction_backend/internal/platform/identity"
)

// BidRejectedMessage is the user-facing text for a bid that is too low.
const BidRejectedMessage = "Bid must be greater than starting bid AND current bid!"

// AuctionUsecase defines the auction operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuctionUsecase interface {
	ListActive(ctx context.Context) ([]entity.Listing, error)
	ListByCategory(ctx context.Context, category string) ([]entity.Listing, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateListing(ctx context.Context, who identity.Identity, in usecase.CreateListingInput) (*entity.Listing, error)
	GetListing(ctx context.Context, who identity.Identity, id uint) (*entity.ListingDetail, error)
	PlaceBid(ctx context.Context, who identity.Identity, listingID uint, amount int64) (*entity.Bid, error)
	ListBids(ctx context.Context, listingID uint) ([]entity.Bid, error)
	AddComment(ctx context.Context, who identity.Identity, listingID uint, body string) (*entity.CommentView, error)
	CloseListing(ctx context.Context, who identity.Identity, listingID uint) (*entity.Listing, error)
	DeleteListing(ctx context.Context, who identity.Identity, listingID uint) error
	AddToWatchlist(ctx context.Context, who identity.Identity, listingID uint) error
	RemoveFromWatchlist(ctx context.Context, who identity.Identity, listingID uint) error
	Watchlist(ctx context.Context, who identity.Identity) ([]entity.Listing, error)
}

// AuctionHandler serves the /listings, /categories and /watchlist routes.
type AuctionHandler struct {
	auction AuctionUsecase
}

// NewAuctionHandler creates an AuctionHandler.
func NewAuctionHandler(auction AuctionUsecase) *AuctionHandler {
	return &AuctionHandler{auction: auction}
}

// ListActive handles GET /listings.
func (h *AuctionHandler) ListActive(c *gin.Context) {
	listings, err := h.auction.ListActive(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromListings(listings))
}

// ListCategories handles GET /categories.
func (h *AuctionHandler) ListCategories(c *gin.Context) {
	categories, err := h.auction.ListCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoryListRes{Categories: categories})
}

// ListByCategory handles GET /categories/:category.
func (h *AuctionHandler) ListByCategory(c *gin.Context) {
	listings, err := h.auction.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromListings(listings))
}

// CreateListing handles POST /listings.
func (h *AuctionHandler) CreateListing(c *gin.Context) {
	var req dto.CreateListingReq
	if err := c.ShouldBind(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	listing, err := h.auction.CreateListing(c.Request.Context(), identity.FromGin(c), usecase.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		StartingBid: req.StartingBid,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromListing(listing))
}

// GetListing handles GET /listings/:id.
func (h *AuctionHandler) GetListing(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	detail, err := h.auction.GetListing(c.Request.Context(), identity.FromGin(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDetail(detail))
}

// DeleteListing handles DELETE /listings/:id.
func (h *AuctionHandler) DeleteListing(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.auction.DeleteListing(c.Request.Context(), identity.FromGin(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBids handles GET /listings/:id/bids.
func (h *AuctionHandler) ListBids(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	bids, err := h.auction.ListBids(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	res := make([]dto.BidRes, 0, len(bids))
	for i := range bids {
		res = append(res, dto.FromBid(&bids[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bids": res})
}

// PlaceBid handles POST /listings/:id/bids.
func (h *AuctionHandler) PlaceBid(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req dto.PlaceBidReq
	if err := c.ShouldBind(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	who := identity.FromGin(c)
	bid, err := h.auction.PlaceBid(c.Request.Context(), who, id, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrBidTooLow) {
			slog.Info("bid rejected", "listing_id", id, "user_id", who.UserID, "amount", req.Amount)
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromBid(bid))
}

// AddComment handles POST /listings/:id/comments.
func (h *AuctionHandler) AddComment(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req dto.CommentReq
	if err := c.ShouldBind(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	comment, err := h.auction.AddComment(c.Request.Context(), identity.FromGin(c), id, req.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromComment(comment))
}

// CloseListing handles POST /listings/:id/close.
func (h *AuctionHandler) CloseListing(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	listing, err := h.auction.CloseListing(c.Request.Context(), identity.FromGin(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromListing(listing))
}

// Watchlist handles GET /watchlist.
func (h *AuctionHandler) Watchlist(c *gin.Context) {
	listings, err := h.auction.Watchlist(c.Request.Context(), identity.FromGin(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromListings(listings))
}

// AddToWatchlist handles POST /watchlist/:id.
func (h *AuctionHandler) AddToWatchlist(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.auction.AddToWatchlist(c.Request.Context(), identity.FromGin(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFromWatchlist handles DELETE /watchlist/:id.
func (h *AuctionHandler) RemoveFromWatchlist(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.auction.RemoveFromWatchlist(c.Request.Context(), identity.FromGin(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listingID parses the :id path parameter, writing a 400 when it is not a
// positive integer.
func listingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respond.FieldErrors(c, map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

// fail maps auction errors to HTTP responses.
func (h *AuctionHandler) fail(c *gin.Context, err error) {
	var field *domain.FieldError
	switch {
	case errors.As(err, &field):
		respond.FieldErrors(c, map[string]string{field.Field: field.Message})
	case errors.Is(err, domain.ErrListingNotFound):
		respond.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrBidTooLow), errors.Is(err, domain.ErrInvalidBid):
		respond.Error(c, http.StatusUnprocessableEntity, BidRejectedMessage)
	case errors.Is(err, domain.ErrListingClosed):
		respond.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotOwner):
		respond.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrAuthRequired):
		respond.Error(c, http.StatusUnauthorized, err.Error())
	default:
		respond.ServerError(c, err)
	}
}
