package books

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

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := filepath.Join(t.TempDir(), "test_books.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.Rating{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return NewRepository(db), db, cleanup
}

func seedBooks(t *testing.T, db *gorm.DB) {
	t.Helper()
	books := []entities.Book{
		{BookID: 1, Title: "Dune", Authors: "Frank Herbert", AverageRating: 4.2, RatingsCount: 600},
		{BookID: 2, Title: "Emma", Authors: "Jane Austen", AverageRating: 4.0, RatingsCount: 300},
		{BookID: 3, Title: "Niche", Authors: "Nobody", AverageRating: 4.9, RatingsCount: 20},
		{BookID: 4, Title: "Austenland", Authors: "Shannon Hale", AverageRating: 3.6, RatingsCount: 150},
	}
	require.NoError(t, db.Create(&books).Error)
}

func TestRepository_GetByID(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	seedBooks(t, db)

	book, err := repo.GetByID(2)

	require.NoError(t, err)
	assert.Equal(t, "Emma", book.Title)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(999)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_List_Paginates(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	seedBooks(t, db)

	page, total, err := repo.List(2, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, page, 2)
	assert.Equal(t, 1, page[0].BookID)

	page, _, err = repo.List(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 3, page[0].BookID)
}

func TestRepository_Search_MatchesTitleAndAuthors(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	seedBooks(t, db)

	byTitle, err := repo.Search("dune", 10)
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, 1, byTitle[0].BookID)

	byAuthor, err := repo.Search("austen", 10)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)
}

func TestRepository_Popular_OrdersAndFilters(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	seedBooks(t, db)

	popular, err := repo.Popular(10, 100, nil)

	require.NoError(t, err)
	require.Len(t, popular, 3, "book below the ratings-count floor must be excluded")
	assert.Equal(t, 1, popular[0].BookID)
	assert.Equal(t, 2, popular[1].BookID)
	assert.Equal(t, 4, popular[2].BookID)
}

func TestRepository_Popular_ExcludesRatedBooks(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	seedBooks(t, db)

	rating := entities.Rating{UserID: 7, BookID: 1, Rating: 5}
	require.NoError(t, db.Create(&rating).Error)

	user := 7
	popular, err := repo.Popular(10, 100, &user)

	require.NoError(t, err)
	require.Len(t, popular, 2)
	for _, b := range popular {
		assert.NotEqual(t, 1, b.BookID)
	}
}
