package entities

import "time"

// User accounts are owned by the API layer; the pipeline never touches the
// users table. The model lives here so the shared migration covers it.
type User struct {
	UserID       int       `gorm:"primaryKey" json:"user_id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:100" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
