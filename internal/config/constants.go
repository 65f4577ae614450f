package config

// Default paths for the pipeline and database
const (
	// DefaultDatabasePath is the default path for the goodbooks database
	DefaultDatabasePath = "./goodbooks.db"

	// DefaultRawDataDir holds the five raw CSV datasets
	DefaultRawDataDir = "./data/raw"

	// DefaultProcessedDataDir receives the cleaned CSV mirror
	DefaultProcessedDataDir = "./data/processed"
)
