package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodbooks/goodbooks/internal/entities"
)

func TestNewDatabase_MigratesAllTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_database.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	migrator := db.DB.Migrator()
	for _, table := range []string{
		"users", "books", "ratings", "to_read", "tags", "book_tags",
		"user_activity", "recommendations",
	} {
		assert.True(t, migrator.HasTable(table), "expected table %s to exist", table)
	}
}

func TestNewDatabase_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_reopen.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	book := entities.Book{BookID: 1, Title: "The Hobbit", Authors: "J.R.R. Tolkien"}
	require.NoError(t, db.DB.Create(&book).Error)
	require.NoError(t, db.Close())

	db, err = NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var found entities.Book
	require.NoError(t, db.DB.First(&found, "book_id = ?", 1).Error)
	assert.Equal(t, "The Hobbit", found.Title)
}
