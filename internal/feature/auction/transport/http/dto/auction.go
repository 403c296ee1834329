// Package dto defines the request and response bodies of the auction endpoints.
package dto

import (
	"time"

	"auction_backend/internal/feature/auction/domain/entity"
)

// CreateListingReq is the body of POST /listings.
type CreateListingReq struct {
	Title       string `json:"title" form:"title" binding:"required,max=64"`
	Description string `json:"description" form:"description" binding:"required,max=500"`
	StartingBid int64  `json:"starting_bid" form:"starting_bid" binding:"required,gt=0"`
	ImageURL    string `json:"image_url" form:"image_url" binding:"omitempty,url,max=200"`
	Category    string `json:"category" form:"category" binding:"omitempty,max=64"`
}

// PlaceBidReq is the body of POST /listings/:id/bids.
type PlaceBidReq struct {
	Amount int64 `json:"amount" form:"amount" binding:"required"`
}

// CommentReq is the body of POST /listings/:id/comments.
type CommentReq struct {
	Body string `json:"body" form:"body" binding:"required,max=500"`
}

type ListingRes struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartingBid int64     `json:"starting_bid"`
	CurrentBid  int64     `json:"current_bid"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category"`
	OwnerID     uint      `json:"owner_id"`
	Active      bool      `json:"active"`
	WinnerID    int64     `json:"winner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type BidRes struct {
	ID        uint      `json:"id"`
	ListingID uint      `json:"listing_id"`
	UserID    uint      `json:"user_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentRes struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	UserID    uint      `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ListingDetailRes is the listing page as seen by the caller.
type ListingDetailRes struct {
	Listing         ListingRes   `json:"listing"`
	Owner           string       `json:"owner"`
	HighestBid      *BidRes      `json:"highest_bid"`
	BidCount        int64        `json:"bid_count"`
	Comments        []CommentRes `json:"comments"`
	OnWatchlist     *bool        `json:"on_watchlist,omitempty"`
	StartedByViewer bool         `json:"started_by_viewer"`
	WonByViewer     bool         `json:"won_by_viewer"`
}

type ListingListRes struct {
	Listings []ListingRes `json:"listings"`
}

type CategoryListRes struct {
	Categories []string `json:"categories"`
}

func FromListing(l *entity.Listing) ListingRes {
	return ListingRes{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		StartingBid: l.StartingBid,
		CurrentBid:  l.CurrentBid,
		ImageURL:    l.ImageURL,
		Category:    l.Category,
		OwnerID:     l.OwnerID,
		Active:      l.Active,
		WinnerID:    l.WinnerID,
		CreatedAt:   l.CreatedAt,
	}
}

func FromListings(listings []entity.Listing) ListingListRes {
	res := ListingListRes{Listings: make([]ListingRes, 0, len(listings))}
	for i := range listings {
		res.Listings = append(res.Listings, FromListing(&listings[i]))
	}
	return res
}

func FromBid(b *entity.Bid) BidRes {
	return BidRes{ID: b.ID, ListingID: b.ListingID, UserID: b.UserID, Amount: b.Amount, CreatedAt: b.CreatedAt}
}

func FromComment(c *entity.CommentView) CommentRes {
	return CommentRes{ID: c.ID, Author: c.Author, UserID: c.UserID, Body: c.Body, CreatedAt: c.CreatedAt}
}

func FromDetail(d *entity.ListingDetail) ListingDetailRes {
	res := ListingDetailRes{
		Listing:         FromListing(&d.Listing),
		Owner:           d.OwnerUsername,
		BidCount:        d.BidCount,
		Comments:        make([]CommentRes, 0, len(d.Comments)),
		OnWatchlist:     d.OnWatchlist,
		StartedByViewer: d.StartedByViewer,
		WonByViewer:     d.WonByViewer,
	}
	if d.HighestBid != nil {
		bid := FromBid(d.HighestBid)
		res.HighestBid = &bid
	}
	for i := range d.Comments {
		res.Comments = append(res.Comments, FromComment(&d.Comments[i]))
	}
	return res
}
