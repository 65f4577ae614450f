package etl

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/goodbooks/goodbooks/internal/dataset"
	"github.com/goodbooks/goodbooks/internal/entities"
)

// CleanData holds the five cleaned datasets as typed rows, in the order the
// raw input supplied them. Every "keep first" rule below resolves against
// that order.
type CleanData struct {
	Ratings  []entities.Rating
	ToRead   []entities.ToRead
	Books    []entities.Book
	BookTags []entities.BookTag
	Tags     []entities.Tag
}

// TransformAll cleans all five datasets. Data-quality problems (duplicates,
// out-of-range values, null fields) are dropped with a warning and never
// fail the stage; only a structurally broken schema (a required column
// missing entirely) returns an error.
func TransformAll(raw *RawData) (*CleanData, error) {
	clean := &CleanData{}
	var err error

	if clean.Ratings, err = CleanRatings(raw.Ratings); err != nil {
		return nil, err
	}
	if clean.ToRead, err = CleanToRead(raw.ToRead); err != nil {
		return nil, err
	}
	if clean.Books, err = CleanBooks(raw.Books); err != nil {
		return nil, err
	}
	if clean.BookTags, err = CleanBookTags(raw.BookTags); err != nil {
		return nil, err
	}
	if clean.Tags, err = CleanTags(raw.Tags); err != nil {
		return nil, err
	}

	return clean, nil
}

// CleanRatings enforces the ratings invariants: one row per (user, book)
// pair (first occurrence wins), rating within 1..5 (out-of-range rows are
// dropped, never clamped), no null fields.
func CleanRatings(t *dataset.Table) ([]entities.Rating, error) {
	log.Printf("Cleaning ratings data")

	if err := t.RequireColumns("user_id", "book_id", "rating"); err != nil {
		return nil, err
	}

	var duplicates, invalid, nulls int
	seen := make(map[[2]int]bool, t.Len())
	ratings := make([]entities.Rating, 0, t.Len())

	for i := range t.Rows {
		userID, userOK := parseIntCell(t.Cell(i, "user_id"))
		bookID, bookOK := parseIntCell(t.Cell(i, "book_id"))
		if !userOK || !bookOK {
			nulls++
			continue
		}

		// Duplicates are resolved on the coerced pair, so a float-encoded
		// id ("2.0") collapses onto its integer twin. A later duplicate of
		// an invalid row still counts as a duplicate.
		key := [2]int{userID, bookID}
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true

		rating, ratingOK := parseIntCell(t.Cell(i, "rating"))
		if !ratingOK {
			nulls++
			continue
		}
		if rating < 1 || rating > 5 {
			invalid++
			continue
		}

		ratings = append(ratings, entities.Rating{
			UserID: userID,
			BookID: bookID,
			Rating: rating,
		})
	}

	if duplicates > 0 {
		log.Printf("Found %d duplicate ratings", duplicates)
	}
	if invalid > 0 {
		log.Printf("Found %d invalid ratings outside the range 1-5", invalid)
	}
	if nulls > 0 {
		log.Printf("Found %d ratings rows with missing values", nulls)
	}

	log.Printf("Ratings data cleaned: %d records remaining", len(ratings))
	return ratings, nil
}

// CleanToRead drops duplicate (user, book) pairs and rows with null fields.
func CleanToRead(t *dataset.Table) ([]entities.ToRead, error) {
	log.Printf("Cleaning to-read data")

	if err := t.RequireColumns("user_id", "book_id"); err != nil {
		return nil, err
	}

	var duplicates, nulls int
	seen := make(map[[2]int]bool, t.Len())
	entries := make([]entities.ToRead, 0, t.Len())

	for i := range t.Rows {
		userID, userOK := parseIntCell(t.Cell(i, "user_id"))
		bookID, bookOK := parseIntCell(t.Cell(i, "book_id"))
		if !userOK || !bookOK {
			nulls++
			continue
		}

		key := [2]int{userID, bookID}
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true

		entries = append(entries, entities.ToRead{UserID: userID, BookID: bookID})
	}

	if duplicates > 0 {
		log.Printf("Found %d duplicate to-read entries", duplicates)
	}
	if nulls > 0 {
		log.Printf("Found %d to-read rows with missing values", nulls)
	}

	log.Printf("To-read data cleaned: %d records remaining", len(entries))
	return entries, nil
}

// CleanBooks normalizes the catalogue: publication years outside
// [0, current year] become null, text fields are trimmed with empty string
// for null, isbn13 becomes numeric or null, id columns are coerced to
// integer, and duplicate book_ids keep the first occurrence.
func CleanBooks(t *dataset.Table) ([]entities.Book, error) {
	log.Printf("Cleaning books data")

	err := t.RequireColumns(
		"book_id", "goodreads_book_id", "best_book_id", "work_id",
		"title", "authors", "original_title",
		"original_publication_year", "isbn", "isbn13",
	)
	if err != nil {
		return nil, err
	}

	currentYear := float64(time.Now().Year())

	var invalidYears, badIDs, duplicates int
	seen := make(map[int]bool, t.Len())
	books := make([]entities.Book, 0, t.Len())

	for i := range t.Rows {
		bookID, ok1 := parseIntCell(t.Cell(i, "book_id"))
		goodreadsID, ok2 := parseIntCell(t.Cell(i, "goodreads_book_id"))
		bestBookID, ok3 := parseIntCell(t.Cell(i, "best_book_id"))
		workID, ok4 := parseIntCell(t.Cell(i, "work_id"))
		if !ok1 || !ok2 || !ok3 || !ok4 {
			badIDs++
			continue
		}

		book := entities.Book{
			BookID:          bookID,
			GoodreadsBookID: goodreadsID,
			BestBookID:      bestBookID,
			WorkID:          workID,
			Title:           strings.TrimSpace(t.Cell(i, "title")),
			Authors:         strings.TrimSpace(t.Cell(i, "authors")),
			OriginalTitle:   strings.TrimSpace(t.Cell(i, "original_title")),
			ISBN:            t.Cell(i, "isbn"),
			LanguageCode:    t.Cell(i, "language_code"),
			ImageURL:        t.Cell(i, "image_url"),
			SmallImageURL:   t.Cell(i, "small_image_url"),
		}

		if year, ok := parseFloatCell(t.Cell(i, "original_publication_year")); ok {
			if year >= 0 && year <= currentYear {
				book.OriginalPublicationYear = &year
			} else {
				invalidYears++
			}
		}

		if isbn13, ok := parseInt64Cell(t.Cell(i, "isbn13")); ok {
			book.ISBN13 = &isbn13
		}

		book.BooksCount, _ = parseIntCell(t.Cell(i, "books_count"))
		book.AverageRating, _ = parseFloatCell(t.Cell(i, "average_rating"))
		book.RatingsCount, _ = parseIntCell(t.Cell(i, "ratings_count"))
		book.WorkRatingsCount, _ = parseIntCell(t.Cell(i, "work_ratings_count"))
		book.WorkTextReviewsCount, _ = parseIntCell(t.Cell(i, "work_text_reviews_count"))
		book.Ratings1, _ = parseIntCell(t.Cell(i, "ratings_1"))
		book.Ratings2, _ = parseIntCell(t.Cell(i, "ratings_2"))
		book.Ratings3, _ = parseIntCell(t.Cell(i, "ratings_3"))
		book.Ratings4, _ = parseIntCell(t.Cell(i, "ratings_4"))
		book.Ratings5, _ = parseIntCell(t.Cell(i, "ratings_5"))

		if seen[bookID] {
			duplicates++
			continue
		}
		seen[bookID] = true

		books = append(books, book)
	}

	if invalidYears > 0 {
		log.Printf("Found %d invalid publication years", invalidYears)
	}
	if badIDs > 0 {
		log.Printf("Found %d books rows with unparsable id columns", badIDs)
	}
	if duplicates > 0 {
		log.Printf("Found %d duplicate book_id entries", duplicates)
	}

	log.Printf("Books data cleaned: %d records remaining", len(books))
	return books, nil
}

// CleanBookTags drops rows with null fields, coerces the three columns to
// integer, and keeps the first occurrence of each (goodreads_book_id,
// tag_id) pair. Null rows are removed before deduplication, so a pair whose
// first occurrence had a null cell survives through its next occurrence.
func CleanBookTags(t *dataset.Table) ([]entities.BookTag, error) {
	log.Printf("Cleaning book tags data")

	if err := t.RequireColumns("goodreads_book_id", "tag_id", "count"); err != nil {
		return nil, err
	}

	var nulls, duplicates int
	seen := make(map[[2]int]bool, t.Len())
	bookTags := make([]entities.BookTag, 0, t.Len())

	for i := range t.Rows {
		goodreadsID, ok1 := parseIntCell(t.Cell(i, "goodreads_book_id"))
		tagID, ok2 := parseIntCell(t.Cell(i, "tag_id"))
		count, ok3 := parseIntCell(t.Cell(i, "count"))
		if !ok1 || !ok2 || !ok3 {
			nulls++
			continue
		}

		key := [2]int{goodreadsID, tagID}
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true

		bookTags = append(bookTags, entities.BookTag{
			GoodreadsBookID: goodreadsID,
			TagID:           tagID,
			Count:           count,
		})
	}

	if nulls > 0 {
		log.Printf("Found %d book tags rows with missing values", nulls)
	}
	if duplicates > 0 {
		log.Printf("Found %d duplicate book tag entries", duplicates)
	}

	log.Printf("Book tags data cleaned: %d records remaining", len(bookTags))
	return bookTags, nil
}

// CleanTags drops rows with null fields, normalizes tag names to trimmed
// lower case, and keeps the first occurrence of each tag_id.
func CleanTags(t *dataset.Table) ([]entities.Tag, error) {
	log.Printf("Cleaning tags data")

	if err := t.RequireColumns("tag_id", "tag_name"); err != nil {
		return nil, err
	}

	var nulls, duplicates int
	seen := make(map[int]bool, t.Len())
	tags := make([]entities.Tag, 0, t.Len())

	for i := range t.Rows {
		tagID, ok := parseIntCell(t.Cell(i, "tag_id"))
		name := strings.ToLower(strings.TrimSpace(t.Cell(i, "tag_name")))
		if !ok || name == "" {
			nulls++
			continue
		}

		if seen[tagID] {
			duplicates++
			continue
		}
		seen[tagID] = true

		tags = append(tags, entities.Tag{TagID: tagID, TagName: name})
	}

	if nulls > 0 {
		log.Printf("Found %d tags rows with missing values", nulls)
	}
	if duplicates > 0 {
		log.Printf("Found %d duplicate tag_id entries", duplicates)
	}

	log.Printf("Tags data cleaned: %d records remaining", len(tags))
	return tags, nil
}

// parseIntCell coerces a raw cell to an integer. The raw files encode some
// integral columns as floats ("314.0"), so a float parse that truncates
// cleanly is accepted. Empty cells are null.
func parseIntCell(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

func parseInt64Cell(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

func parseFloatCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
