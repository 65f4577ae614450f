package entities

import "time"

// Rating is one user's star rating of one book. The (user_id, book_id) pair
// is the composite primary key — at most one rating per pair survives
// cleaning, and the API layer upserts on the same key between pipeline runs.
type Rating struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	BookID    int       `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	Rating    int       `json:"rating"` // 1..5, enforced by the cleaner
	Review    string    `gorm:"type:text" json:"review,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}

// ToRead marks a book on a user's reading list.
type ToRead struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	BookID    int       `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	AddedDate time.Time `json:"added_date,omitempty"`
}

func (ToRead) TableName() string {
	return "to_read"
}
