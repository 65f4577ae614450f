package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodbooks/goodbooks/internal/config"
	"github.com/goodbooks/goodbooks/internal/database"
	"github.com/goodbooks/goodbooks/internal/etl"
	"github.com/goodbooks/goodbooks/internal/scheduler"
)

// EtlCommand runs the extract-clean-load pipeline once, or on a recurring
// schedule when -schedule is given.
type EtlCommand struct {
	NoDB         bool
	NoCSV        bool
	DatabasePath string
	RawDir       string
	ProcessedDir string
	Schedule     string
}

// NewEtlCommand creates a new EtlCommand
func NewEtlCommand() *EtlCommand {
	return &EtlCommand{}
}

// ParseFlags parses command line flags
func (cmd *EtlCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("etl", flag.ContinueOnError)

	fs.BoolVar(&cmd.NoDB, "no-db", false, "Skip loading data to the database")
	fs.BoolVar(&cmd.NoCSV, "no-csv", false, "Skip saving cleaned data as CSV")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the sqlite database (default from DATABASE_PATH)")
	fs.StringVar(&cmd.RawDir, "raw-dir", "", "Directory holding the raw CSV datasets (default from RAW_DATA_DIR)")
	fs.StringVar(&cmd.ProcessedDir, "processed-dir", "", "Directory for the cleaned CSV mirror (default from PROCESSED_DATA_DIR)")
	fs.StringVar(&cmd.Schedule, "schedule", "", "Cron schedule for recurring runs (runs once and exits if empty)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s etl [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run the goodbooks ETL pipeline: extract the five raw CSV datasets,\n")
		fmt.Fprintf(os.Stderr, "clean them, and load the result into sqlite and a cleaned CSV mirror.\n\n")
		fmt.Fprintf(os.Stderr, "The database load is a full-table replace: each run wipes the five\n")
		fmt.Fprintf(os.Stderr, "pipeline-owned tables, including any rows written by the API since\n")
		fmt.Fprintf(os.Stderr, "the previous run.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Run once with both sinks:\n")
		fmt.Fprintf(os.Stderr, "  %s etl\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Clean and mirror to CSV without touching the database:\n")
		fmt.Fprintf(os.Stderr, "  %s etl -no-db\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Re-run every night at 03:00:\n")
		fmt.Fprintf(os.Stderr, "  %s etl -schedule \"0 3 * * *\"\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the pipeline. The returned error maps to exit code 1.
func (cmd *EtlCommand) Run() error {
	cfg := config.NewConfig()
	cmd.applyOverrides(cfg)

	opts := etl.Options{
		LoadToDB: !cmd.NoDB,
		SaveCSV:  !cmd.NoCSV,
	}

	var db *database.Database
	if opts.LoadToDB {
		var err error
		db, err = database.NewDatabase(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
	}

	pipeline := etl.NewPipeline(cfg, gormDB(db))

	if cmd.Schedule != "" {
		return cmd.runScheduled(pipeline, opts)
	}

	if _, err := pipeline.Run(opts); err != nil {
		return err
	}
	return nil
}

func (cmd *EtlCommand) runScheduled(pipeline *etl.Pipeline, opts etl.Options) error {
	sched := scheduler.NewPipelineScheduler(pipeline, opts, cmd.Schedule)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sched.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	sched.Stop()
	return nil
}

func (cmd *EtlCommand) applyOverrides(cfg *config.Config) {
	if cmd.DatabasePath != "" {
		cfg.Database.Path = cmd.DatabasePath
	}
	if cmd.RawDir != "" || cmd.ProcessedDir != "" {
		rawDir := cfg.Etl.RawDataDir
		if cmd.RawDir != "" {
			rawDir = cmd.RawDir
		}
		processedDir := cfg.Etl.ProcessedDataDir
		if cmd.ProcessedDir != "" {
			processedDir = cmd.ProcessedDir
		}
		cfg.Etl = config.EtlPaths(rawDir, processedDir)
	}
}
