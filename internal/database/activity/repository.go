// Package activity provides the append-only user activity log.
package activity

import (
	"time"

	"gorm.io/gorm"

	"github.com/goodbooks/goodbooks/internal/entities"
)

// Repository handles activity log operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new activity repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Log appends one activity event.
func (r *Repository) Log(event *entities.UserActivity) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return r.db.Create(event).Error
}

// Recent retrieves the latest activity events for a user.
func (r *Repository) Recent(userID int, limit int) ([]entities.UserActivity, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []entities.UserActivity
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// RecentByType retrieves the latest events of one type for a user.
func (r *Repository) RecentByType(userID int, activityType entities.ActivityType, limit int) ([]entities.UserActivity, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []entities.UserActivity
	err := r.db.Where("user_id = ? AND activity_type = ?", userID, activityType).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
