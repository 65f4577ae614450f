package entities

// Book is one row of the goodbooks catalogue. The pipeline fully replaces
// the books table on every run, so there are no gorm timestamps here — the
// row's identity is the dataset's own book_id.
type Book struct {
	BookID                   int      `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	GoodreadsBookID          int      `gorm:"index" json:"goodreads_book_id"`
	BestBookID               int      `json:"best_book_id"`
	WorkID                   int      `json:"work_id"`
	BooksCount               int      `json:"books_count"`
	ISBN                     string   `gorm:"size:20" json:"isbn,omitempty"`
	ISBN13                   *int64   `json:"isbn13,omitempty"`
	Authors                  string   `gorm:"size:512" json:"authors"`
	OriginalPublicationYear  *float64 `json:"original_publication_year,omitempty"`
	OriginalTitle            string   `gorm:"size:512" json:"original_title"`
	Title                    string   `gorm:"index;size:512" json:"title"`
	LanguageCode             string   `gorm:"size:10" json:"language_code,omitempty"`
	AverageRating            float64  `gorm:"index" json:"average_rating"`
	RatingsCount             int      `gorm:"index" json:"ratings_count"`
	WorkRatingsCount         int      `json:"work_ratings_count"`
	WorkTextReviewsCount     int      `json:"work_text_reviews_count"`
	Ratings1                 int      `json:"ratings_1"`
	Ratings2                 int      `json:"ratings_2"`
	Ratings3                 int      `json:"ratings_3"`
	Ratings4                 int      `json:"ratings_4"`
	Ratings5                 int      `json:"ratings_5"`
	ImageURL                 string   `gorm:"size:2048" json:"image_url,omitempty"`
	SmallImageURL            string   `gorm:"size:2048" json:"small_image_url,omitempty"`
}

func (Book) TableName() string {
	return "books"
}
