package etl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodbooks/goodbooks/internal/config"
)

func writeRawFixtures(t *testing.T, dir string) {
	t.Helper()

	fixtures := map[string]string{
		"ratings.csv": "user_id,book_id,rating\n1,258,5\n2,4081,4\n",
		"to_read.csv": "user_id,book_id\n9,8\n15,398\n",
		"books.csv": "book_id,goodreads_book_id,best_book_id,work_id,books_count," +
			"isbn,isbn13,authors,original_publication_year,original_title,title," +
			"language_code,average_rating,ratings_count,work_ratings_count," +
			"work_text_reviews_count,ratings_1,ratings_2,ratings_3,ratings_4,ratings_5," +
			"image_url,small_image_url\n" +
			"1,2767052,2767052,2792775,272,439023483,9780439023480.0,Suzanne Collins,2008.0," +
			"The Hunger Games,\"The Hunger Games (The Hunger Games, #1)\",eng,4.34,4780653," +
			"4942365,155254,66715,127936,560092,1481305,2706317," +
			"https://images.example.com/1.jpg,https://images.example.com/1s.jpg\n",
		"book_tags.csv": "goodreads_book_id,tag_id,count\n1,30574,167697\n1,11305,37174\n",
		"tags.csv":      "tag_id,tag_name\n30574,to-read\n11305,fantasy\n",
	}

	for name, content := range fixtures {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestExtractAll_ReadsAllFiveDatasets(t *testing.T) {
	rawDir := t.TempDir()
	writeRawFixtures(t, rawDir)

	extractor := NewExtractor(config.EtlPaths(rawDir, t.TempDir()))
	raw, err := extractor.ExtractAll()

	require.NoError(t, err)
	assert.Equal(t, 2, raw.Ratings.Len())
	assert.Equal(t, 2, raw.ToRead.Len())
	assert.Equal(t, 1, raw.Books.Len())
	assert.Equal(t, 2, raw.BookTags.Len())
	assert.Equal(t, 2, raw.Tags.Len())
}

func TestExtractAll_PreservesInputOrder(t *testing.T) {
	rawDir := t.TempDir()
	writeRawFixtures(t, rawDir)

	extractor := NewExtractor(config.EtlPaths(rawDir, t.TempDir()))
	raw, err := extractor.ExtractAll()

	require.NoError(t, err)
	assert.Equal(t, "1", raw.Ratings.Cell(0, "user_id"))
	assert.Equal(t, "2", raw.Ratings.Cell(1, "user_id"))
	assert.Equal(t, "to-read", raw.Tags.Cell(0, "tag_name"))
}

func TestExtractAll_MissingFileIsFatal(t *testing.T) {
	rawDir := t.TempDir()
	writeRawFixtures(t, rawDir)
	require.NoError(t, os.Remove(filepath.Join(rawDir, "books.csv")))

	extractor := NewExtractor(config.EtlPaths(rawDir, t.TempDir()))
	raw, err := extractor.ExtractAll()

	require.Error(t, err)
	assert.Nil(t, raw)
	assert.Contains(t, err.Error(), "books")
}

func TestExtractAll_EmptyFileIsFatal(t *testing.T) {
	rawDir := t.TempDir()
	writeRawFixtures(t, rawDir)
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, "ratings.csv"), nil, 0o644))

	extractor := NewExtractor(config.EtlPaths(rawDir, t.TempDir()))
	_, err := extractor.ExtractAll()

	require.Error(t, err)
}
