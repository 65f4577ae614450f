package etl

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gorm.io/gorm"

	"github.com/goodbooks/goodbooks/internal/config"
	"github.com/goodbooks/goodbooks/internal/dataset"
	"github.com/goodbooks/goodbooks/internal/entities"
)

// insertBatchSize bounds the number of rows per INSERT so sqlite stays under
// its bound-variable limit for the wide books table.
const insertBatchSize = 500

// SaveToCSV mirrors the cleaned tables to flat files, one per entity, header
// row included, rows in cleaned order. The output is deterministic: the same
// clean input produces byte-identical files.
func SaveToCSV(clean *CleanData, cfg config.Etl) error {
	log.Printf("Saving cleaned data to CSV files")

	if err := os.MkdirAll(cfg.ProcessedDataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create processed data directory: %w", err)
	}

	sinks := []struct {
		name  string
		path  string
		table *dataset.Table
	}{
		{"ratings", cfg.CleanRatingsFile, ratingsTable(clean.Ratings)},
		{"to-read", cfg.CleanToReadFile, toReadTable(clean.ToRead)},
		{"books", cfg.CleanBooksFile, booksTable(clean.Books)},
		{"book tags", cfg.CleanBookTagsFile, bookTagsTable(clean.BookTags)},
		{"tags", cfg.CleanTagsFile, tagsTable(clean.Tags)},
	}

	for _, sink := range sinks {
		if err := sink.table.WriteCSVFile(sink.path); err != nil {
			return fmt.Errorf("failed to save clean %s: %w", sink.name, err)
		}
		log.Printf("Saved clean %s to %s", sink.name, sink.path)
	}

	return nil
}

// LoadToDatabase persists the cleaned tables with full-table replace: each
// target table is dropped and recreated from the clean rows. Re-running the
// pipeline on the same input therefore yields identical stored state, at the
// cost of wiping any rows other writers inserted since the previous run.
//
// Load order respects referential dependencies: books and tags land before
// book_tags. A failed entity aborts the remaining loads and leaves the
// already-replaced tables in place; operators reconcile by re-running the
// full pipeline.
func LoadToDatabase(clean *CleanData, db *gorm.DB) error {
	log.Printf("Loading data to database")

	if err := replaceTable(db, &entities.Book{}, clean.Books); err != nil {
		return fmt.Errorf("error loading books: %w", err)
	}
	log.Printf("Loaded %d books into database", len(clean.Books))

	if err := replaceTable(db, &entities.Tag{}, clean.Tags); err != nil {
		return fmt.Errorf("error loading tags: %w", err)
	}
	log.Printf("Loaded %d tags into database", len(clean.Tags))

	if err := replaceTable(db, &entities.BookTag{}, clean.BookTags); err != nil {
		return fmt.Errorf("error loading book tags: %w", err)
	}
	log.Printf("Loaded %d book tags into database", len(clean.BookTags))

	if err := replaceTable(db, &entities.Rating{}, clean.Ratings); err != nil {
		return fmt.Errorf("error loading ratings: %w", err)
	}
	log.Printf("Loaded %d ratings into database", len(clean.Ratings))

	if err := replaceTable(db, &entities.ToRead{}, clean.ToRead); err != nil {
		return fmt.Errorf("error loading to-read entries: %w", err)
	}
	log.Printf("Loaded %d to-read entries into database", len(clean.ToRead))

	return nil
}

// replaceTable drops and recreates one entity's table, then bulk-inserts the
// clean rows. Not an upsert: the previous table contents are discarded.
func replaceTable(db *gorm.DB, model any, rows any) error {
	migrator := db.Migrator()

	if migrator.HasTable(model) {
		if err := migrator.DropTable(model); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	if err := db.AutoMigrate(model); err != nil {
		return fmt.Errorf("failed to recreate table: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.CreateInBatches(rows, insertBatchSize)
		if result.Error != nil {
			return fmt.Errorf("failed to insert rows: %w", result.Error)
		}
		return nil
	})
}

func ratingsTable(ratings []entities.Rating) *dataset.Table {
	t := dataset.NewTable([]string{"user_id", "book_id", "rating"})
	for _, r := range ratings {
		t.Append([]string{
			strconv.Itoa(r.UserID),
			strconv.Itoa(r.BookID),
			strconv.Itoa(r.Rating),
		})
	}
	return t
}

func toReadTable(entries []entities.ToRead) *dataset.Table {
	t := dataset.NewTable([]string{"user_id", "book_id"})
	for _, e := range entries {
		t.Append([]string{
			strconv.Itoa(e.UserID),
			strconv.Itoa(e.BookID),
		})
	}
	return t
}

func booksTable(books []entities.Book) *dataset.Table {
	t := dataset.NewTable([]string{
		"book_id", "goodreads_book_id", "best_book_id", "work_id", "books_count",
		"isbn", "isbn13", "authors", "original_publication_year", "original_title",
		"title", "language_code", "average_rating", "ratings_count",
		"work_ratings_count", "work_text_reviews_count",
		"ratings_1", "ratings_2", "ratings_3", "ratings_4", "ratings_5",
		"image_url", "small_image_url",
	})
	for _, b := range books {
		year := ""
		if b.OriginalPublicationYear != nil {
			year = strconv.FormatFloat(*b.OriginalPublicationYear, 'f', -1, 64)
		}
		isbn13 := ""
		if b.ISBN13 != nil {
			isbn13 = strconv.FormatInt(*b.ISBN13, 10)
		}
		t.Append([]string{
			strconv.Itoa(b.BookID),
			strconv.Itoa(b.GoodreadsBookID),
			strconv.Itoa(b.BestBookID),
			strconv.Itoa(b.WorkID),
			strconv.Itoa(b.BooksCount),
			b.ISBN,
			isbn13,
			b.Authors,
			year,
			b.OriginalTitle,
			b.Title,
			b.LanguageCode,
			strconv.FormatFloat(b.AverageRating, 'f', -1, 64),
			strconv.Itoa(b.RatingsCount),
			strconv.Itoa(b.WorkRatingsCount),
			strconv.Itoa(b.WorkTextReviewsCount),
			strconv.Itoa(b.Ratings1),
			strconv.Itoa(b.Ratings2),
			strconv.Itoa(b.Ratings3),
			strconv.Itoa(b.Ratings4),
			strconv.Itoa(b.Ratings5),
			b.ImageURL,
			b.SmallImageURL,
		})
	}
	return t
}

func bookTagsTable(bookTags []entities.BookTag) *dataset.Table {
	t := dataset.NewTable([]string{"goodreads_book_id", "tag_id", "count"})
	for _, bt := range bookTags {
		t.Append([]string{
			strconv.Itoa(bt.GoodreadsBookID),
			strconv.Itoa(bt.TagID),
			strconv.Itoa(bt.Count),
		})
	}
	return t
}

func tagsTable(tags []entities.Tag) *dataset.Table {
	t := dataset.NewTable([]string{"tag_id", "tag_name"})
	for _, tag := range tags {
		t.Append([]string{
			strconv.Itoa(tag.TagID),
			tag.TagName,
		})
	}
	return t
}
