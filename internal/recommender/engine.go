// Package recommender scores candidate books for a user by tag affinity,
// with a popularity fallback for users the personalized path cannot serve.
package recommender

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/goodbooks/goodbooks/internal/config"
	"github.com/goodbooks/goodbooks/internal/database/books"
	"github.com/goodbooks/goodbooks/internal/database/recommendations"
	"github.com/goodbooks/goodbooks/internal/entities"
)

// Source labels which strategy produced a response.
const (
	SourceTagBased = entities.RecommendationSourceTagBased
	SourcePopular  = "popular"
)

// Request asks for up to Limit candidates. UserID is nil for anonymous
// callers; ExcludeRated only matters on the popularity path (the
// personalized path always excludes already-rated books).
type Request struct {
	UserID       *int
	Limit        int
	ExcludeRated bool
}

// LikedTag is one entry of the personalized path's rationale: a tag and how
// many of the user's highly-rated books carry it.
type LikedTag struct {
	TagID   int    `gorm:"column:tag_id" json:"tag_id"`
	TagName string `gorm:"column:tag_name" json:"tag_name"`
	Count   int    `gorm:"column:count" json:"count"`
}

// Candidate is one ranked book. TagMatches is zero on the popularity path.
type Candidate struct {
	entities.Book `gorm:"embedded"`
	TagMatches    int `gorm:"column:tag_count" json:"tag_matches,omitempty"`
}

// Response is an ordered candidate list plus, for the personalized path,
// the tag-affinity rationale.
type Response struct {
	Books     []Candidate
	Source    string
	LikedTags []LikedTag
}

// Engine evaluates the fallback chain: personalized tag affinity, then
// popularity. It only reads the pipeline-owned tables and appends to the
// recommendations trail, so concurrent callers need no coordination.
type Engine struct {
	db       *gorm.DB
	cfg      config.Recommender
	catalog  *books.Repository
	recTrail *recommendations.Repository
}

// NewEngine creates a scoring engine over the shared database.
func NewEngine(db *gorm.DB, cfg config.Recommender) *Engine {
	return &Engine{
		db:       db,
		cfg:      cfg,
		catalog:  books.NewRepository(db),
		recTrail: recommendations.NewRepository(db),
	}
}

// Recommend produces ranked candidates, trying personalized scoring first
// and falling back to popularity. A user whose ratings are all below the
// liked threshold falls through to popularity, never to an empty result.
func (e *Engine) Recommend(req Request) (*Response, error) {
	limit := e.capLimit(req.Limit)

	if req.UserID == nil {
		return e.popular(limit, nil)
	}
	userID := *req.UserID

	var ratingCount int64
	err := e.db.Model(&entities.Rating{}).Where("user_id = ?", userID).Count(&ratingCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count user ratings: %w", err)
	}
	if ratingCount == 0 {
		return e.fallback(limit, userID, req.ExcludeRated)
	}

	likedTags, err := e.likedTags(userID)
	if err != nil {
		return nil, err
	}
	if len(likedTags) == 0 {
		return e.fallback(limit, userID, req.ExcludeRated)
	}

	candidates, err := e.tagCandidates(userID, likedTags, limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return e.fallback(limit, userID, req.ExcludeRated)
	}

	if err := e.recordTrail(userID, candidates); err != nil {
		return nil, err
	}

	return &Response{Books: candidates, Source: SourceTagBased, LikedTags: likedTags}, nil
}

// likedTags collects the user's most frequent tags across books rated at or
// above the liked threshold. Equal counts break on the lower tag_id so the
// result is deterministic regardless of scan order.
func (e *Engine) likedTags(userID int) ([]LikedTag, error) {
	var tags []LikedTag
	err := e.db.Table("tags").
		Select("tags.tag_id, tags.tag_name, COUNT(tags.tag_id) AS count").
		Joins("JOIN book_tags ON tags.tag_id = book_tags.tag_id").
		Joins("JOIN books ON book_tags.goodreads_book_id = books.goodreads_book_id").
		Joins("JOIN ratings ON ratings.book_id = books.book_id").
		Where("ratings.user_id = ? AND ratings.rating >= ?", userID, e.cfg.LikedRatingMin).
		Group("tags.tag_id, tags.tag_name").
		Order("count DESC, tags.tag_id").
		Limit(e.cfg.LikedTagsLimit).
		Scan(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to collect liked tags: %w", err)
	}
	return tags, nil
}

// tagCandidates ranks books carrying any liked tag by how many liked tags
// match, then average rating, excluding books the user has already rated
// and anything below the quality floors.
func (e *Engine) tagCandidates(userID int, likedTags []LikedTag, limit int) ([]Candidate, error) {
	tagIDs := make([]int, len(likedTags))
	for i, t := range likedTags {
		tagIDs[i] = t.TagID
	}

	rated := e.db.Model(&entities.Rating{}).
		Select("book_id").
		Where("user_id = ?", userID)

	var candidates []Candidate
	err := e.db.Table("books").
		Select("books.*, COUNT(book_tags.tag_id) AS tag_count").
		Joins("JOIN book_tags ON books.goodreads_book_id = book_tags.goodreads_book_id").
		Where("book_tags.tag_id IN ?", tagIDs).
		Where("books.book_id NOT IN (?)", rated).
		Where("books.average_rating >= ?", e.cfg.MinAverageRating).
		Where("books.ratings_count >= ?", e.cfg.MinRatingsCount).
		Group("books.book_id").
		Order("tag_count DESC, books.average_rating DESC, books.book_id").
		Limit(limit).
		Scan(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank tag candidates: %w", err)
	}
	return candidates, nil
}

// recordTrail appends one recommendation row per emitted candidate. The
// popularity path never reaches here.
func (e *Engine) recordTrail(userID int, candidates []Candidate) error {
	generatedAt := time.Now()
	recs := make([]entities.Recommendation, len(candidates))
	for i, c := range candidates {
		recs[i] = entities.Recommendation{
			UserID:      userID,
			BookID:      c.BookID,
			Score:       c.AverageRating,
			Source:      SourceTagBased,
			GeneratedAt: generatedAt,
		}
	}
	if err := e.recTrail.Record(recs); err != nil {
		return fmt.Errorf("failed to record recommendations: %w", err)
	}
	return nil
}

func (e *Engine) fallback(limit int, userID int, excludeRated bool) (*Response, error) {
	log.Printf("Falling back to popular recommendations for user %d", userID)
	var exclude *int
	if excludeRated {
		exclude = &userID
	}
	return e.popular(limit, exclude)
}

// popular returns the widely-read high-rated list. No recommendation rows
// are written on this path.
func (e *Engine) popular(limit int, excludeUserID *int) (*Response, error) {
	popularBooks, err := e.catalog.Popular(limit, e.cfg.PopularRatingsCount, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch popular books: %w", err)
	}

	candidates := make([]Candidate, len(popularBooks))
	for i, b := range popularBooks {
		candidates[i] = Candidate{Book: b}
	}
	return &Response{Books: candidates, Source: SourcePopular}, nil
}

func (e *Engine) capLimit(limit int) int {
	if limit <= 0 {
		return e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		return e.cfg.MaxLimit
	}
	return limit
}
