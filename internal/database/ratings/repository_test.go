package ratings

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
	dbPath := filepath.Join(t.TempDir(), "test_ratings.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Rating{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return NewRepository(db), cleanup
}

func TestRepository_UpsertCreatesAndReplaces(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Upsert(&entities.Rating{UserID: 1, BookID: 5, Rating: 3}))
	require.NoError(t, repo.Upsert(&entities.Rating{UserID: 1, BookID: 5, Rating: 5, Review: "reread, much better"}))

	rating, err := repo.Get(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Rating)
	assert.Equal(t, "reread, much better", rating.Review)

	count, err := repo.CountForUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "upsert must not create a second row for the pair")
}

func TestRepository_UpsertSetsTimestamp(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	rating := &entities.Rating{UserID: 2, BookID: 1, Rating: 4}
	require.NoError(t, repo.Upsert(rating))

	assert.False(t, rating.Timestamp.IsZero())
}

func TestRepository_ForUserAndRatedBookIDs(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Upsert(&entities.Rating{UserID: 1, BookID: 5, Rating: 3}))
	require.NoError(t, repo.Upsert(&entities.Rating{UserID: 1, BookID: 7, Rating: 4}))
	require.NoError(t, repo.Upsert(&entities.Rating{UserID: 2, BookID: 5, Rating: 2}))

	ratings, err := repo.ForUser(1)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)

	ids, err := repo.RatedBookIDs(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{5, 7}, ids)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Upsert(&entities.Rating{UserID: 1, BookID: 5, Rating: 3}))
	require.NoError(t, repo.Delete(1, 5))

	_, err := repo.Get(1, 5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
