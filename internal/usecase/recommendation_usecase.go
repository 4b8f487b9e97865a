package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"campusbridge/internal/domain/matching"
	"campusbridge/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrStudentNotFound = errors.New("student not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrInternal        = errors.New("internal error")
)

// RecommendationCache is the optional deployment-level cache for computed
// pages. A nil implementation (or an unreachable redis) simply recomputes.
type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type RecommendationParams struct {
	Limit  int
	Offset int
}

type SignalEntry struct {
	Signal string
	Score  float64
	Weight float64
}

type RecommendationItem struct {
	CandidateID    uuid.UUID
	CompositeScore float64
	MatchedSkills  []string
	MissingSkills  []string
	Breakdown      []SignalEntry
}

type RecommendationPage struct {
	Items   []RecommendationItem
	Total   int
	Partial bool
}

type RecommendationUsecase interface {
	// ForStudent ranks the student's eligible listings.
	ForStudent(ctx context.Context, studentID uuid.UUID, params RecommendationParams) (RecommendationPage, error)
	// ForListing ranks eligible student candidates for a listing.
	ForListing(ctx context.Context, listingID uuid.UUID, params RecommendationParams) (RecommendationPage, error)
}

type Recommendation struct {
	students repository.StudentRepository
	listings repository.ListingRepository
	ranker   *matching.Ranker
	profile  string

	cache    RecommendationCache
	cacheTTL time.Duration
	logger   *log.Logger
}

func NewRecommendationUsecase(
	students repository.StudentRepository,
	listings repository.ListingRepository,
	ranker *matching.Ranker,
	profile string,
	cache RecommendationCache,
	cacheTTL time.Duration,
	logger *log.Logger,
) *Recommendation {
	return &Recommendation{
		students: students,
		listings: listings,
		ranker:   ranker,
		profile:  profile,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (u *Recommendation) ForStudent(ctx context.Context, studentID uuid.UUID, params RecommendationParams) (RecommendationPage, error) {
	if studentID == uuid.Nil {
		return RecommendationPage{}, ErrUnauthorized
	}
	// Pagination is validated before any pool work so an invalid request
	// never triggers partial computation.
	if err := matching.ValidatePagination(params.Limit, params.Offset); err != nil {
		return RecommendationPage{}, ErrInvalidInput
	}

	snap, err := u.students.FindSnapshotByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return RecommendationPage{}, ErrStudentNotFound
		}
		return RecommendationPage{}, ErrInternal
	}

	pool, err := u.listings.ListEligibleForStudent(ctx, studentID)
	if err != nil {
		return RecommendationPage{}, ErrInternal
	}
	if len(pool) == 0 {
		return emptyRecommendationPage(), nil
	}

	key := u.cacheKey(ctx, subjectTypeStudent, studentID, params, func(vctx context.Context) (string, error) {
		return u.listings.PoolVersionForStudent(vctx, studentID)
	})
	if page, ok := u.cachedPage(ctx, key); ok {
		return page, nil
	}

	ranked, err := u.ranker.RankListings(ctx, engineStudent(snap), engineListings(pool), params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, matching.ErrInvalidArgument) {
			return RecommendationPage{}, ErrInvalidInput
		}
		return RecommendationPage{}, ErrInternal
	}

	page := toRecommendationPage(ranked)
	u.storePage(ctx, key, page)
	return page, nil
}

func (u *Recommendation) ForListing(ctx context.Context, listingID uuid.UUID, params RecommendationParams) (RecommendationPage, error) {
	if listingID == uuid.Nil {
		return RecommendationPage{}, ErrListingNotFound
	}
	if err := matching.ValidatePagination(params.Limit, params.Offset); err != nil {
		return RecommendationPage{}, ErrInvalidInput
	}

	subject, err := u.listings.FindSnapshotByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return RecommendationPage{}, ErrListingNotFound
		}
		return RecommendationPage{}, ErrInternal
	}

	pool, err := u.students.ListEligibleForListing(ctx, listingID)
	if err != nil {
		return RecommendationPage{}, ErrInternal
	}
	if len(pool) == 0 {
		return emptyRecommendationPage(), nil
	}

	key := u.cacheKey(ctx, subjectTypeListing, listingID, params, func(vctx context.Context) (string, error) {
		return u.students.PoolVersionForListing(vctx, listingID)
	})
	if page, ok := u.cachedPage(ctx, key); ok {
		return page, nil
	}

	ranked, err := u.ranker.RankStudents(ctx, engineListing(subject), engineStudents(pool), params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, matching.ErrInvalidArgument) {
			return RecommendationPage{}, ErrInvalidInput
		}
		return RecommendationPage{}, ErrInternal
	}

	page := toRecommendationPage(ranked)
	u.storePage(ctx, key, page)
	return page, nil
}

func (u *Recommendation) cacheKey(ctx context.Context, subjectType string, subjectID uuid.UUID, params RecommendationParams, version func(context.Context) (string, error)) string {
	if u.cache == nil {
		return ""
	}
	v, err := version(ctx)
	if err != nil {
		// No version means no safe key; skip the cache for this request.
		if u.logger != nil {
			u.logger.Printf("[Recommendation] pool version unavailable, skipping cache: %v", err)
		}
		return ""
	}
	return recommendationCacheKey(subjectType, subjectID, u.profile, v, params)
}

func (u *Recommendation) cachedPage(ctx context.Context, key string) (RecommendationPage, bool) {
	if u.cache == nil || key == "" {
		return RecommendationPage{}, false
	}
	var page RecommendationPage
	ok, err := u.cache.GetJSON(ctx, key, &page)
	if err != nil || !ok {
		return RecommendationPage{}, false
	}
	if page.Items == nil {
		page.Items = []RecommendationItem{}
	}
	return page, true
}

func (u *Recommendation) storePage(ctx context.Context, key string, page RecommendationPage) {
	if u.cache == nil || key == "" || page.Partial {
		return
	}
	if err := u.cache.SetJSON(ctx, key, page, u.cacheTTL); err != nil && u.logger != nil {
		u.logger.Printf("[Recommendation] cache store failed: %v", err)
	}
}

func toRecommendationPage(page matching.Page) RecommendationPage {
	items := make([]RecommendationItem, 0, len(page.Recommendations))
	for _, rec := range page.Recommendations {
		breakdown := make([]SignalEntry, 0, len(rec.Score.Breakdown))
		for _, entry := range rec.Score.Breakdown {
			breakdown = append(breakdown, SignalEntry{
				Signal: string(entry.Name),
				Score:  entry.Score,
				Weight: entry.Weight,
			})
		}
		items = append(items, RecommendationItem{
			CandidateID:    rec.CandidateID,
			CompositeScore: rec.Score.Value,
			MatchedSkills:  rec.Score.MatchedSkills,
			MissingSkills:  rec.Score.MissingSkills,
			Breakdown:      breakdown,
		})
	}
	return RecommendationPage{Items: items, Total: page.Total, Partial: page.Partial}
}

func emptyRecommendationPage() RecommendationPage {
	return RecommendationPage{Items: []RecommendationItem{}, Total: 0}
}
