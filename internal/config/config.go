package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Etl
		Database
		Recommender
		EtlSync
	}

	Etl struct {
		RawDataDir       string
		ProcessedDataDir string

		RatingsFile  string
		ToReadFile   string
		BooksFile    string
		BookTagsFile string
		TagsFile     string

		CleanRatingsFile  string
		CleanToReadFile   string
		CleanBooksFile    string
		CleanBookTagsFile string
		CleanTagsFile     string
	}

	Database struct {
		Path string
	}

	Recommender struct {
		DefaultLimit int
		MaxLimit     int

		// Personalized-path thresholds
		LikedRatingMin   int     // ratings at or above this count as "liked"
		LikedTagsLimit   int     // how many top tags to collect
		MinAverageRating float64 // candidate floor
		MinRatingsCount  int     // candidate floor

		// Popularity-path threshold
		PopularRatingsCount int
	}

	EtlSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

// EtlPaths derives the fixed per-entity file locations from the two data
// directories. Filenames match the upstream goodbooks dataset on the raw
// side and the "_clean" convention on the processed side.
func EtlPaths(rawDir, processedDir string) Etl {
	return Etl{
		RawDataDir:       rawDir,
		ProcessedDataDir: processedDir,

		RatingsFile:  filepath.Join(rawDir, "ratings.csv"),
		ToReadFile:   filepath.Join(rawDir, "to_read.csv"),
		BooksFile:    filepath.Join(rawDir, "books.csv"),
		BookTagsFile: filepath.Join(rawDir, "book_tags.csv"),
		TagsFile:     filepath.Join(rawDir, "tags.csv"),

		CleanRatingsFile:  filepath.Join(processedDir, "ratings_clean.csv"),
		CleanToReadFile:   filepath.Join(processedDir, "to_read_clean.csv"),
		CleanBooksFile:    filepath.Join(processedDir, "books_clean.csv"),
		CleanBookTagsFile: filepath.Join(processedDir, "book_tags_clean.csv"),
		CleanTagsFile:     filepath.Join(processedDir, "tags_clean.csv"),
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("raw_data_dir", DefaultRawDataDir)
	v.SetDefault("processed_data_dir", DefaultProcessedDataDir)
	v.SetDefault("database_path", DefaultDatabasePath)

	v.SetDefault("recommend_default_limit", 10)
	v.SetDefault("recommend_max_limit", 50)
	v.SetDefault("recommend_liked_rating_min", 4)
	v.SetDefault("recommend_liked_tags_limit", 5)
	v.SetDefault("recommend_min_average_rating", 3.5)
	v.SetDefault("recommend_min_ratings_count", 50)
	v.SetDefault("recommend_popular_ratings_count", 100)

	v.SetDefault("etl_sync_enabled", false)
	v.SetDefault("etl_sync_schedule", "0 3 * * *") // Daily at 03:00

	return &Config{
		Etl: EtlPaths(v.GetString("RAW_DATA_DIR"), v.GetString("PROCESSED_DATA_DIR")),
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Recommender: Recommender{
			DefaultLimit:        v.GetInt("RECOMMEND_DEFAULT_LIMIT"),
			MaxLimit:            v.GetInt("RECOMMEND_MAX_LIMIT"),
			LikedRatingMin:      v.GetInt("RECOMMEND_LIKED_RATING_MIN"),
			LikedTagsLimit:      v.GetInt("RECOMMEND_LIKED_TAGS_LIMIT"),
			MinAverageRating:    v.GetFloat64("RECOMMEND_MIN_AVERAGE_RATING"),
			MinRatingsCount:     v.GetInt("RECOMMEND_MIN_RATINGS_COUNT"),
			PopularRatingsCount: v.GetInt("RECOMMEND_POPULAR_RATINGS_COUNT"),
		},
		EtlSync: EtlSync{
			Enabled:  v.GetBool("ETL_SYNC_ENABLED"),
			Schedule: v.GetString("ETL_SYNC_SCHEDULE"),
		},
	}
}
