package testutil

import (
	"path/filepath"
	"testing"

	"github.com/sidequest-app/sidequest/server/cache"
	"github.com/sidequest-app/sidequest/server/config"
	dbadapter "github.com/sidequest-app/sidequest/server/db"
	"github.com/sidequest-app/sidequest/server/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestDB creates a SQLite database in a test temp dir and runs
// AutoMigrate. It requires no external services and is safe to use in
// parallel tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbadapter.Open(config.DatabaseConfig{
		Mode:       dbadapter.ModeSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err, "SetupTestDB: Open")
	require.NoError(t, model.AutoMigrate(db), "SetupTestDB: AutoMigrate")
	return db
}

// SetupTestCache creates a LocalCache (no Redis required).
func SetupTestCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.New(cache.Config{}) // empty RedisAddr → LocalCache
	require.NoError(t, err, "SetupTestCache: New")
	return c
}
