package cli

import (
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/goodbooks/goodbooks/internal/config"
	"github.com/goodbooks/goodbooks/internal/database"
	"github.com/goodbooks/goodbooks/internal/recommender"
)

// RecommendCommand prints ranked book candidates for a user, mainly for
// operator spot-checks of the scoring engine against a loaded database.
type RecommendCommand struct {
	UserID       int
	Limit        int
	ExcludeRated bool
	DatabasePath string
}

// NewRecommendCommand creates a new RecommendCommand
func NewRecommendCommand() *RecommendCommand {
	return &RecommendCommand{}
}

// ParseFlags parses command line flags
func (cmd *RecommendCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)

	fs.IntVar(&cmd.UserID, "user", 0, "User id to personalize for (anonymous if omitted)")
	fs.IntVar(&cmd.Limit, "limit", 0, "Maximum number of candidates (default from config, capped)")
	fs.BoolVar(&cmd.ExcludeRated, "exclude-rated", false, "Exclude already-rated books on the popularity path")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the sqlite database (default from DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s recommend [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Score candidate books for a user by tag affinity, falling back to\n")
		fmt.Fprintf(os.Stderr, "the popularity list when personalization has nothing to work with.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Personalized candidates for user 42:\n")
		fmt.Fprintf(os.Stderr, "  %s recommend -user 42 -limit 20\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Anonymous popularity list:\n")
		fmt.Fprintf(os.Stderr, "  %s recommend\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run queries the scoring engine and prints the ranked result.
func (cmd *RecommendCommand) Run() error {
	cfg := config.NewConfig()
	if cmd.DatabasePath != "" {
		cfg.Database.Path = cmd.DatabasePath
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine := recommender.NewEngine(db.DB, cfg.Recommender)

	req := recommender.Request{
		Limit:        cmd.Limit,
		ExcludeRated: cmd.ExcludeRated,
	}
	if cmd.UserID > 0 {
		req.UserID = &cmd.UserID
	}

	resp, err := engine.Recommend(req)
	if err != nil {
		return err
	}

	fmt.Printf("Source: %s\n", resp.Source)
	if len(resp.LikedTags) > 0 {
		fmt.Printf("Liked tags:")
		for _, tag := range resp.LikedTags {
			fmt.Printf(" %s(%d)", tag.TagName, tag.Count)
		}
		fmt.Println()
	}
	for i, c := range resp.Books {
		fmt.Printf("%2d. [%d] %s — %s (avg %.2f, %d ratings", i+1, c.BookID, c.Title, c.Authors, c.AverageRating, c.RatingsCount)
		if c.TagMatches > 0 {
			fmt.Printf(", %d tag matches", c.TagMatches)
		}
		fmt.Println(")")
	}
	return nil
}

// gormDB unwraps the database handle, tolerating a nil wrapper when the
// database sink is disabled.
func gormDB(db *database.Database) *gorm.DB {
	if db == nil {
		return nil
	}
	return db.DB
}
