package etl

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/goodbooks/goodbooks/internal/config"
)

// State names the pipeline's position in its run.
type State string

const (
	StateExtracting   State = "extracting"
	StateTransforming State = "transforming"
	StateLoading      State = "loading"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// Options toggles the two sinks independently. Extraction and
// transformation always run.
type Options struct {
	LoadToDB bool
	SaveCSV  bool
}

// Result reports one pipeline run.
type Result struct {
	State       State
	FailedStage State // stage that was running when the pipeline failed
	Elapsed     time.Duration

	Ratings  int
	ToRead   int
	Books    int
	BookTags int
	Tags     int
}

// Pipeline sequences Extract → Transform → Load with no retry: any stage
// error fails the whole run. Runs are strictly sequential; callers must
// serialize concurrent invocations against the same storage target
// themselves, since overlapping full-replace loads interleave undefined.
type Pipeline struct {
	cfg *config.Config
	db  *gorm.DB // may be nil when the database sink is disabled
}

// NewPipeline creates a pipeline. The db handle is only used when the
// database sink is enabled and may be nil otherwise.
func NewPipeline(cfg *config.Config, db *gorm.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db}
}

// Run executes one pipeline pass and reports the outcome. The returned
// error carries the failing stage's cause; Result.FailedStage names the
// stage for operator logs and the process exit code.
func (p *Pipeline) Run(opts Options) (Result, error) {
	start := time.Now()
	log.Printf("Starting ETL pipeline")

	result := Result{State: StateExtracting}

	log.Printf("Starting data extraction")
	raw, err := NewExtractor(p.cfg.Etl).ExtractAll()
	if err != nil {
		return p.fail(result, StateExtracting, start, err)
	}
	log.Printf("Data extraction completed")

	result.State = StateTransforming
	log.Printf("Starting data transformation")
	clean, err := TransformAll(raw)
	if err != nil {
		return p.fail(result, StateTransforming, start, err)
	}
	log.Printf("Data transformation completed")

	result.Ratings = len(clean.Ratings)
	result.ToRead = len(clean.ToRead)
	result.Books = len(clean.Books)
	result.BookTags = len(clean.BookTags)
	result.Tags = len(clean.Tags)

	result.State = StateLoading
	if opts.SaveCSV {
		if err := SaveToCSV(clean, p.cfg.Etl); err != nil {
			return p.fail(result, StateLoading, start, err)
		}
		log.Printf("Data saved to CSV")
	}
	if opts.LoadToDB {
		if err := LoadToDatabase(clean, p.db); err != nil {
			return p.fail(result, StateLoading, start, err)
		}
		log.Printf("Data loaded to database")
	}

	result.State = StateDone
	result.Elapsed = time.Since(start)
	log.Printf("ETL pipeline completed successfully in %.2f seconds", result.Elapsed.Seconds())
	return result, nil
}

func (p *Pipeline) fail(result Result, stage State, start time.Time, err error) (Result, error) {
	result.State = StateFailed
	result.FailedStage = stage
	result.Elapsed = time.Since(start)
	log.Printf("ETL pipeline failed during %s: %v", stage, err)
	log.Printf("ETL pipeline failed after %.2f seconds", result.Elapsed.Seconds())
	return result, err
}
