// Package adapters provides the GORM repositories of the auction feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"
)

// Models lists the tables owned by the auction feature, for migrations.
func Models() []any {
	return []any{&entity.Listing{}, &entity.Bid{}, &entity.Comment{}, &entity.WatchlistEntry{}}
}

// store hands out repositories bound to a connection or a transaction.
type store struct {
	db *gorm.DB
}

var _ usecase.Store = (*store)(nil)

// NewStore creates a store for db.
func NewStore(db *gorm.DB) *store {
	return &store{db: db}
}

func (s *store) Repositories() usecase.Repositories {
	return reposFor(s.db)
}

// WithinTx runs fn in a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (s *store) WithinTx(ctx context.Context, fn func(usecase.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func reposFor(db *gorm.DB) usecase.Repositories {
	return usecase.Repositories{
		Listings:  NewListingGorm(db),
		Bids:      NewBidGorm(db),
		Comments:  NewCommentGorm(db),
		Watchlist: NewWatchlistGorm(db),
	}
}
