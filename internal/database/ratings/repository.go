// Package ratings provides database operations for user star ratings.
//
// The ratings table is seeded by the ETL loader and then written to by the
// API layer between pipeline runs. Rows written here do not survive the next
// full-replace load.
package ratings

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goodbooks/goodbooks/internal/entities"
)

// Repository handles all rating database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new ratings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert creates or replaces a user's rating of a book.
func (r *Repository) Upsert(rating *entities.Rating) error {
	if rating.Timestamp.IsZero() {
		rating.Timestamp = time.Now()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		UpdateAll: true,
	}).Create(rating).Error
}

// Get retrieves one user's rating of one book.
func (r *Repository) Get(userID, bookID int) (*entities.Rating, error) {
	var rating entities.Rating
	err := r.db.First(&rating, "user_id = ? AND book_id = ?", userID, bookID).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Delete removes a user's rating of a book.
func (r *Repository) Delete(userID, bookID int) error {
	return r.db.Delete(&entities.Rating{}, "user_id = ? AND book_id = ?", userID, bookID).Error
}

// ForUser retrieves all ratings by a user, most recent first.
func (r *Repository) ForUser(userID int) ([]entities.Rating, error) {
	var ratings []entities.Rating
	err := r.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&ratings).Error
	return ratings, err
}

// CountForUser returns how many books a user has rated.
func (r *Repository) CountForUser(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Rating{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// RatedBookIDs returns the book_ids a user has rated.
func (r *Repository) RatedBookIDs(userID int) ([]int, error) {
	var ids []int
	err := r.db.Model(&entities.Rating{}).
		Where("user_id = ?", userID).
		Pluck("book_id", &ids).Error
	return ids, err
}
