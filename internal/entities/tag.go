package entities

// Tag is a goodreads shelf name, normalized by the cleaner (trimmed,
// lower-cased).
type Tag struct {
	TagID   int    `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
	TagName string `gorm:"index;size:100" json:"tag_name"`
}

func (Tag) TableName() string {
	return "tags"
}

// BookTag joins books to tags. Note the book side keys on goodreads_book_id,
// not book_id — that is how the upstream dataset ships, and the recommender's
// joins have to bridge the two.
type BookTag struct {
	GoodreadsBookID int `gorm:"primaryKey;autoIncrement:false" json:"goodreads_book_id"`
	TagID           int `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
	Count           int `json:"count"`
}

func (BookTag) TableName() string {
	return "book_tags"
}
