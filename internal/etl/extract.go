package etl

import (
	"fmt"
	"log"

	"github.com/goodbooks/goodbooks/internal/config"
	"github.com/goodbooks/goodbooks/internal/dataset"
)

// RawData holds the five raw datasets exactly as read from disk, one table
// per entity, rows in file order.
type RawData struct {
	Ratings  *dataset.Table
	ToRead   *dataset.Table
	Books    *dataset.Table
	BookTags *dataset.Table
	Tags     *dataset.Table
}

// Extractor reads the raw CSV datasets into memory. Extraction is
// all-or-nothing: a single missing or unreadable file fails the whole stage
// and nothing downstream runs.
type Extractor struct {
	cfg config.Etl
}

// NewExtractor creates an extractor over the configured raw data directory.
func NewExtractor(cfg config.Etl) *Extractor {
	return &Extractor{cfg: cfg}
}

// ExtractAll reads all five datasets, or fails on the first unreadable one.
func (e *Extractor) ExtractAll() (*RawData, error) {
	data := &RawData{}
	var err error

	if data.Ratings, err = e.extract("ratings", e.cfg.RatingsFile); err != nil {
		return nil, err
	}
	if data.ToRead, err = e.extract("to-read", e.cfg.ToReadFile); err != nil {
		return nil, err
	}
	if data.Books, err = e.extract("books", e.cfg.BooksFile); err != nil {
		return nil, err
	}
	if data.BookTags, err = e.extract("book tags", e.cfg.BookTagsFile); err != nil {
		return nil, err
	}
	if data.Tags, err = e.extract("tags", e.cfg.TagsFile); err != nil {
		return nil, err
	}

	return data, nil
}

func (e *Extractor) extract(name, path string) (*dataset.Table, error) {
	log.Printf("Extracting %s data from %s", name, path)

	table, err := dataset.ReadCSVFile(path)
	if err != nil {
		return nil, fmt.Errorf("error extracting %s data: %w", name, err)
	}

	log.Printf("Successfully extracted %d %s records", table.Len(), name)
	return table, nil
}
