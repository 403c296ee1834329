package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/platform/db"
)

// setupTestDB opens a private in-memory SQLite database with the auction tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.Migrate(conn, Models()...), "failed to migrate")

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return conn
}

// seedListing inserts an active listing with the given starting bid.
func seedListing(t *testing.T, conn *gorm.DB, ownerID uint, startingBid int64, category string) *entity.Listing {
	t.Helper()

	l := &entity.Listing{
		Title:       "Lamp",
		Description: "Brass desk lamp",
		StartingBid: startingBid,
		CurrentBid:  startingBid,
		OwnerID:     ownerID,
		Active:      true,
		WinnerID:    entity.NoWinner,
		Category:    category,
	}
	require.NoError(t, NewListingGorm(conn).Create(context.Background(), l), "failed to seed listing")
	return l
}

// seedBid appends a bid without any business checks.
func seedBid(t *testing.T, conn *gorm.DB, listingID, userID uint, amount int64) *entity.Bid {
	t.Helper()

	b := &entity.Bid{ListingID: listingID, UserID: userID, Amount: amount}
	require.NoError(t, NewBidGorm(conn).Create(context.Background(), b), "failed to seed bid")
	return b
}
