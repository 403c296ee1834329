// Package usecase implements the auction's business logic.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/platform/identity"
)

// CreateListingInput is the data needed to open a listing.
type CreateListingInput struct {
	Title       string
	Description string
	StartingBid int64
	ImageURL    string
	Category    string
}

// auctionUsecase implements listings, bidding, comments and watchlists.
type auctionUsecase struct {
	store Store
	users UserDirectory
}

// NewAuctionUsecase creates an auctionUsecase.
func NewAuctionUsecase(store Store, users UserDirectory) *auctionUsecase {
	return &auctionUsecase{store: store, users: users}
}

func requireUser(who identity.Identity) error {
	if !who.IsAuthenticated() {
		return domain.ErrAuthRequired
	}
	return nil
}

// ListActive returns every active listing, newest first.
func (u *auctionUsecase) ListActive(ctx context.Context) ([]entity.Listing, error) {
	return u.store.Repositories().Listings.ListActive(ctx, "")
}

// ListByCategory returns active listings in category, ignoring case.
func (u *auctionUsecase) ListByCategory(ctx context.Context, category string) ([]entity.Listing, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return []entity.Listing{}, nil
	}
	return u.store.Repositories().Listings.ListActive(ctx, category)
}

// ListCategories returns the categories that have active listings.
func (u *auctionUsecase) ListCategories(ctx context.Context) ([]string, error) {
	return u.store.Repositories().Listings.Categories(ctx)
}

// CreateListing opens a listing owned by who. The current bid starts at the starting bid.
func (u *auctionUsecase) CreateListing(ctx context.Context, who identity.Identity, in CreateListingInput) (*entity.Listing, error) {
	if err := requireUser(who); err != nil {
		return nil, err
	}
	if in.StartingBid <= 0 {
		return nil, domain.ErrInvalidBid
	}

	title, err := domain.RequireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	description, err := domain.RequireText("description", in.Description)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.DefaultCategory
	}

	listing := &entity.Listing{
		Title:       title,
		Description: description,
		StartingBid: in.StartingBid,
		CurrentBid:  in.StartingBid,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		OwnerID:     who.UserID,
		Active:      true,
		WinnerID:    entity.NoWinner,
		Category:    category,
	}
	if err := u.store.Repositories().Listings.Create(ctx, listing); err != nil {
		return nil, err
	}

	slog.Info("listing created", "listing_id", listing.ID, "owner_id", who.UserID)
	return listing, nil
}

// GetListing assembles the listing page for who, who may be anonymous.
func (u *auctionUsecase) GetListing(ctx context.Context, who identity.Identity, id uint) (*entity.ListingDetail, error) {
	repos := u.store.Repositories()

	listing, err := repos.Listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entity.ListingDetail{
		Listing:         *listing,
		StartedByViewer: listing.IsOwnedBy(who.UserID),
		WonByViewer:     listing.IsWonBy(who.UserID),
	}

	latest, err := repos.Bids.Latest(ctx, id)
	switch {
	case err == nil:
		detail.HighestBid = latest
	case !errors.Is(err, domain.ErrNoBids):
		return nil, err
	}
	if detail.BidCount, err = repos.Bids.CountByListing(ctx, id); err != nil {
		return nil, err
	}

	comments, err := repos.Comments.ListByListing(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := []uint{listing.OwnerID}
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	names, err := u.users.Usernames(ctx, ids)
	if err != nil {
		return nil, err
	}
	detail.OwnerUsername = names[listing.OwnerID]
	detail.Comments = make([]entity.CommentView, 0, len(comments))
	for _, c := range comments {
		detail.Comments = append(detail.Comments, entity.CommentView{Comment: c, Author: names[c.UserID]})
	}

	if who.IsAuthenticated() {
		watching, err := repos.Watchlist.Contains(ctx, who.UserID, id)
		if err != nil {
			return nil, err
		}
		detail.OnWatchlist = &watching
	}

	return detail, nil
}

// PlaceBid records a bid of amount on the listing. Inside one transaction
// with the listing row locked, the bid must exceed both the starting bid
// and the latest bid; a rejected bid changes nothing.
func (u *auctionUsecase) PlaceBid(ctx context.Context, who identity.Identity, listingID uint, amount int64) (*entity.Bid, error) {
	if err := requireUser(who); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidBid
	}

	var bid *entity.Bid
	err := u.store.WithinTx(ctx, func(repos Repositories) error {
		listing, err := repos.Listings.FindByIDForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if !listing.Active {
			return domain.ErrListingClosed
		}

		var current int64
		latest, err := repos.Bids.Latest(ctx, listingID)
		switch {
		case err == nil:
			current = latest.Amount
		case !errors.Is(err, domain.ErrNoBids):
			return err
		}

		if amount <= listing.StartingBid || amount <= current {
			return domain.ErrBidTooLow
		}

		bid = &entity.Bid{ListingID: listingID, UserID: who.UserID, Amount: amount}
		if err := repos.Bids.Create(ctx, bid); err != nil {
			return err
		}
		listing.CurrentBid = amount
		return repos.Listings.UpdateState(ctx, listing)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("bid placed", "listing_id", listingID, "user_id", who.UserID, "amount", amount)
	return bid, nil
}

// ListBids returns the bid history of a listing, oldest first.
func (u *auctionUsecase) ListBids(ctx context.Context, listingID uint) ([]entity.Bid, error) {
	repos := u.store.Repositories()
	if _, err := repos.Listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}
	return repos.Bids.ListByListing(ctx, listingID)
}

// AddComment posts body on the listing as who.
func (u *auctionUsecase) AddComment(ctx context.Context, who identity.Identity, listingID uint, body string) (*entity.CommentView, error) {
	if err := requireUser(who); err != nil {
		return nil, err
	}
	body, err := domain.RequireText("body", body)
	if err != nil {
		return nil, err
	}

	repos := u.store.Repositories()
	if _, err := repos.Listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{UserID: who.UserID, ListingID: listingID, Body: body}
	if err := repos.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return &entity.CommentView{Comment: *comment, Author: who.Username}, nil
}

// CloseListing ends the auction. Only the owner may close it; the bidder of
// the latest bid wins, or nobody when there were no bids.
func (u *auctionUsecase) CloseListing(ctx context.Context, who identity.Identity, listingID uint) (*entity.Listing, error) {
	if err := requireUser(who); err != nil {
		return nil, err
	}

	var closed *entity.Listing
	err := u.store.WithinTx(ctx, func(repos Repositories) error {
		listing, err := repos.Listings.FindByIDForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if !listing.IsOwnedBy(who.UserID) {
			return domain.ErrNotOwner
		}
		if !listing.Active {
			return domain.ErrListingClosed
		}

		listing.WinnerID = entity.NoWinner
		latest, err := repos.Bids.Latest(ctx, listingID)
		switch {
		case err == nil:
			listing.WinnerID = int64(latest.UserID)
		case !errors.Is(err, domain.ErrNoBids):
			return err
		}

		listing.Active = false
		if err := repos.Listings.UpdateState(ctx, listing); err != nil {
			return err
		}
		closed = listing
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("listing closed", "listing_id", listingID, "winner_id", closed.WinnerID)
	return closed, nil
}

// DeleteListing removes the listing with its bids, comments and watchlist
// rows. Only the owner may delete it.
func (u *auctionUsecase) DeleteListing(ctx context.Context, who identity.Identity, listingID uint) error {
	if err := requireUser(who); err != nil {
		return err
	}

	err := u.store.WithinTx(ctx, func(repos Repositories) error {
		listing, err := repos.Listings.FindByIDForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if !listing.IsOwnedBy(who.UserID) {
			return domain.ErrNotOwner
		}

		if err := repos.Bids.DeleteByListing(ctx, listingID); err != nil {
			return fmt.Errorf("failed to delete bids: %w", err)
		}
		if err := repos.Comments.DeleteByListing(ctx, listingID); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := repos.Watchlist.DeleteByListing(ctx, listingID); err != nil {
			return fmt.Errorf("failed to delete watchlist entries: %w", err)
		}
		return repos.Listings.Delete(ctx, listingID)
	})
	if err != nil {
		return err
	}

	slog.Info("listing deleted", "listing_id", listingID, "owner_id", who.UserID)
	return nil
}

// AddToWatchlist adds the listing to who's watchlist. Adding twice is harmless.
func (u *auctionUsecase) AddToWatchlist(ctx context.Context, who identity.Identity, listingID uint) error {
	if err := requireUser(who); err != nil {
		return err
	}

	repos := u.store.Repositories()
	if _, err := repos.Listings.FindByID(ctx, listingID); err != nil {
		return err
	}
	return repos.Watchlist.Add(ctx, who.UserID, listingID)
}

// RemoveFromWatchlist removes the listing from who's watchlist if present.
func (u *auctionUsecase) RemoveFromWatchlist(ctx context.Context, who identity.Identity, listingID uint) error {
	if err := requireUser(who); err != nil {
		return err
	}

	repos := u.store.Repositories()
	if _, err := repos.Listings.FindByID(ctx, listingID); err != nil {
		return err
	}
	return repos.Watchlist.Remove(ctx, who.UserID, listingID)
}

// Watchlist returns the active listings on who's watchlist.
func (u *auctionUsecase) Watchlist(ctx context.Context, who identity.Identity) ([]entity.Listing, error) {
	if err := requireUser(who); err != nil {
		return nil, err
	}
	return u.store.Repositories().Watchlist.ActiveListings(ctx, who.UserID)
}
