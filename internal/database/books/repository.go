// Package books provides database operations for the book catalogue.
package books

import (
	"gorm.io/gorm"

	"github.com/goodbooks/goodbooks/internal/entities"
)

// Repository handles read access to the books table. The table itself is
// owned by the ETL loader, so there are no create/update operations here.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a book by its book_id.
func (r *Repository) GetByID(bookID int) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, "book_id = ?", bookID).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List retrieves a page of books ordered by book_id.
func (r *Repository) List(limit, offset int) ([]entities.Book, int64, error) {
	var books []entities.Book
	var total int64

	if err := r.db.Model(&entities.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	err := r.db.Order("book_id").Limit(limit).Offset(offset).Find(&books).Error
	return books, total, err
}

// Search finds books whose title or authors match the query
// (case-insensitive partial match).
func (r *Repository) Search(query string, limit int) ([]entities.Book, error) {
	var books []entities.Book
	pattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(authors) LIKE LOWER(?)", pattern, pattern).
		Order("ratings_count DESC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

// Popular returns the highest-rated widely-read books: ratings_count above
// minRatingsCount, ordered by average rating then ratings count. When
// excludeUserID is non-nil, books that user has already rated are skipped.
func (r *Repository) Popular(limit, minRatingsCount int, excludeUserID *int) ([]entities.Book, error) {
	query := r.db.
		Where("ratings_count > ?", minRatingsCount).
		Order("average_rating DESC, ratings_count DESC, book_id")

	if excludeUserID != nil {
		rated := r.db.Model(&entities.Rating{}).
			Select("book_id").
			Where("user_id = ?", *excludeUserID)
		query = query.Where("book_id NOT IN (?)", rated)
	}

	var books []entities.Book
	err := query.Limit(limit).Find(&books).Error
	return books, err
}
