package usecase

import (
	"context"

	"auction_backend/internal/feature/auction/domain/entity"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=usecase

// ListingRepository persists listings. Lookups return domain.ErrListingNotFound.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uint) (*entity.Listing, error)

	// FindByIDForUpdate reads the listing and locks its row until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*entity.Listing, error)

	// ListActive returns active listings, newest first. An empty category
	// matches all; otherwise categories compare case-insensitively.
	ListActive(ctx context.Context, category string) ([]entity.Listing, error)

	// Categories returns the categories of active listings, compared
	// case-insensitively and sorted.
	Categories(ctx context.Context) ([]string, error)

	// UpdateState saves CurrentBid, Active and WinnerID.
	UpdateState(ctx context.Context, listing *entity.Listing) error

	Delete(ctx context.Context, id uint) error
}

// BidRepository persists bids.
type BidRepository interface {
	Create(ctx context.Context, bid *entity.Bid) error

	// Latest returns the bid with the highest id, or domain.ErrNoBids.
	Latest(ctx context.Context, listingID uint) (*entity.Bid, error)

	// ListByListing returns bids oldest first.
	ListByListing(ctx context.Context, listingID uint) ([]entity.Bid, error)
	CountByListing(ctx context.Context, listingID uint) (int64, error)
	DeleteByListing(ctx context.Context, listingID uint) error
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error

	// ListByListing returns comments oldest first.
	ListByListing(ctx context.Context, listingID uint) ([]entity.Comment, error)
	DeleteByListing(ctx context.Context, listingID uint) error
}

// WatchlistRepository persists the user/listing watch relation.
type WatchlistRepository interface {
	// Add is idempotent.
	Add(ctx context.Context, userID, listingID uint) error

	// Remove is a no-op when the pair is absent.
	Remove(ctx context.Context, userID, listingID uint) error
	Contains(ctx context.Context, userID, listingID uint) (bool, error)

	// ActiveListings returns the user's watched listings that are still active.
	ActiveListings(ctx context.Context, userID uint) ([]entity.Listing, error)
	DeleteByListing(ctx context.Context, listingID uint) error
}

// Repositories groups the repositories that share a connection or transaction.
type Repositories struct {
	Listings  ListingRepository
	Bids      BidRepository
	Comments  CommentRepository
	Watchlist WatchlistRepository
}

// Store hands out repositories, either on the plain connection or bound to
// a single transaction.
type Store interface {
	Repositories() Repositories

	// WithinTx runs fn in one transaction. It commits when fn returns nil and
	// rolls back otherwise, returning fn's error unchanged.
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}

// UserDirectory resolves user ids to usernames.
type UserDirectory interface {
	// Usernames omits unknown ids from the result.
	Usernames(ctx context.Context, ids []uint) (map[uint]string, error)
}
