// Package recommendations stores the append-only trail of emitted
// recommendations. Rows are never updated, deleted, or deduplicated; the
// table exists for auditing which candidates each user was shown and why.
package recommendations

import (
	"time"

	"gorm.io/gorm"

	"github.com/goodbooks/goodbooks/internal/entities"
)

// Repository handles recommendation trail operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new recommendations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record appends a batch of recommendation rows in one insert.
func (r *Repository) Record(recs []entities.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	now := time.Now()
	for i := range recs {
		if recs[i].GeneratedAt.IsZero() {
			recs[i].GeneratedAt = now
		}
	}
	return r.db.Create(&recs).Error
}

// ForUser retrieves a user's recommendation history, most recent first.
func (r *Repository) ForUser(userID int, limit int) ([]entities.Recommendation, error) {
	if limit <= 0 {
		limit = 50
	}
	var recs []entities.Recommendation
	err := r.db.Where("user_id = ?", userID).
		Order("generated_at DESC, id DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}

// CountForUser returns how many recommendation rows a user has accumulated.
func (r *Repository) CountForUser(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Recommendation{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
