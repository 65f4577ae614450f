package toread

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goodbooks/goodbooks/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := filepath.Join(t.TempDir(), "test_toread.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ToRead{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return NewRepository(db), cleanup
}

func TestRepository_AddIsIdempotent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Add(1, 42))
	require.NoError(t, repo.Add(1, 42))

	entries, err := repo.ForUser(1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRepository_ContainsAndRemove(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Add(1, 42))

	found, err := repo.Contains(1, 42)
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, repo.Remove(1, 42))

	found, err = repo.Contains(1, 42)
	require.NoError(t, err)
	assert.False(t, found)
}
