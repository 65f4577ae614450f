package entities

import "time"

type ActivityType string

const (
	ActivityRating    ActivityType = "rating"
	ActivityToRead    ActivityType = "to_read"
	ActivityRegister  ActivityType = "register"
	ActivityLogin     ActivityType = "login"
	ActivityRecommend ActivityType = "recommend"
)

// UserActivity is an append-only log of user actions, written by the API
// layer and by the recommender. Rows are never updated or deleted.
type UserActivity struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       int          `gorm:"index" json:"user_id"`
	ActivityType ActivityType `gorm:"index;size:50" json:"activity_type"`
	BookID       *int         `json:"book_id,omitempty"`
	Timestamp    time.Time    `gorm:"index" json:"timestamp"`
	Details      string       `gorm:"size:500" json:"details,omitempty"`
}

func (UserActivity) TableName() string {
	return "user_activity"
}

// RecommendationSourceTagBased marks rows produced by the personalized
// tag-affinity path. The popularity fallback writes no rows.
const RecommendationSourceTagBased = "tag_based"

// Recommendation records one emitted candidate for auditing. Append-only:
// repeated requests for the same user produce new rows, never dedupes.
type Recommendation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      int       `gorm:"index" json:"user_id"`
	BookID      int       `json:"book_id"`
	Score       float64   `json:"score"`
	Source      string    `gorm:"size:50" json:"source"`
	GeneratedAt time.Time `gorm:"index" json:"generated_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
