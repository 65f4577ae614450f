// Package toread provides database operations for reading-list entries.
package toread

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goodbooks/goodbooks/internal/entities"
)

// Repository handles all to-read list database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new to-read repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add puts a book on a user's reading list. Adding an already-listed book
// is a no-op rather than an error.
func (r *Repository) Add(userID, bookID int) error {
	entry := &entities.ToRead{
		UserID:    userID,
		BookID:    bookID,
		AddedDate: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
}

// Remove takes a book off a user's reading list.
func (r *Repository) Remove(userID, bookID int) error {
	return r.db.Delete(&entities.ToRead{}, "user_id = ? AND book_id = ?", userID, bookID).Error
}

// Contains reports whether a book is on a user's reading list.
func (r *Repository) Contains(userID, bookID int) (bool, error) {
	var entry entities.ToRead
	err := r.db.First(&entry, "user_id = ? AND book_id = ?", userID, bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ForUser retrieves a user's reading list, most recently added first.
func (r *Repository) ForUser(userID int) ([]entities.ToRead, error) {
	var entries []entities.ToRead
	err := r.db.Where("user_id = ?", userID).Order("added_date DESC").Find(&entries).Error
	return entries, err
}
