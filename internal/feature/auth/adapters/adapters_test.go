package adapters

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/platform/db"
)

// setupTestDB opens a private in-memory SQLite database with the auth tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.Migrate(conn, &entity.User{}, &SessionModel{}), "failed to migrate")

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return conn
}

// seedUser inserts a user and returns it with its generated id.
func seedUser(t *testing.T, conn *gorm.DB, username string) *entity.User {
	t.Helper()

	u := &entity.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, conn.Create(u).Error, "failed to seed user")
	return u
}
