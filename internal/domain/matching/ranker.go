package matching

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidArgument = errors.New("invalid argument")

// MaxLimit caps a single recommendation page. Larger requests are rejected
// rather than clamped so the caller sees the mistake.
const MaxLimit = 100

// Recommendation is one ranked candidate. It is recomputed per request and
// never persisted.
type Recommendation struct {
	CandidateID uuid.UUID
	Score       CompositeScore
}

// Page is a ranked, truncated slice of a candidate pool. Total counts every
// scored candidate, not just the returned window. Partial is set when the
// request deadline expired before the whole pool could be dispatched.
type Page struct {
	Recommendations []Recommendation
	Total           int
	Partial         bool
}

// Ranker scores a candidate pool against a subject using one scoring profile
// and produces a deterministic ordering: composite score descending, then the
// candidate's tie-break timestamp descending, then candidate id ascending.
type Ranker struct {
	registry *Registry
	workers  int
	now      func() time.Time
}

// NewRanker binds a ranker to a scoring profile. workers bounds the parallel
// scoring fan-out; zero or negative selects the number of CPUs.
func NewRanker(registry *Registry, workers int) *Ranker {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ranker{registry: registry, workers: workers, now: time.Now}
}

// ValidatePagination rejects pagination a caller should never send. It is
// exported so callers can fail before doing any pool work.
func ValidatePagination(limit, offset int) error {
	if limit < 1 {
		return fmt.Errorf("%w: limit %d, want >= 1", ErrInvalidArgument, limit)
	}
	if limit > MaxLimit {
		return fmt.Errorf("%w: limit %d, want <= %d", ErrInvalidArgument, limit, MaxLimit)
	}
	if offset < 0 {
		return fmt.Errorf("%w: offset %d, want >= 0", ErrInvalidArgument, offset)
	}
	return nil
}

// RankListings ranks a pool of listings for a student. Listings tie-break on
// their publication timestamp.
func (r *Ranker) RankListings(ctx context.Context, student StudentProfile, pool []ProjectListing, limit, offset int) (Page, error) {
	if err := ValidatePagination(limit, offset); err != nil {
		return Page{}, err
	}
	if len(pool) == 0 {
		return emptyPage(), nil
	}

	at := r.now().UTC()
	scores := make([]CompositeScore, len(pool))
	partial, scored := r.scorePool(ctx, len(pool), func(i int) {
		scores[i] = r.registry.Score(student, pool[i], at)
	})

	ranked := make([]rankedCandidate, 0, len(pool))
	for i := range pool {
		if !scored[i] {
			continue
		}
		var tieBreak time.Time
		if pool[i].PublishedAt != nil {
			tieBreak = *pool[i].PublishedAt
		}
		ranked = append(ranked, rankedCandidate{id: pool[i].ID, tieBreak: tieBreak, score: scores[i]})
	}

	return paginate(ranked, limit, offset, partial), nil
}

// RankStudents ranks a pool of students for a listing. Students tie-break on
// their profile update timestamp.
func (r *Ranker) RankStudents(ctx context.Context, subject ProjectListing, pool []StudentProfile, limit, offset int) (Page, error) {
	if err := ValidatePagination(limit, offset); err != nil {
		return Page{}, err
	}
	if len(pool) == 0 {
		return emptyPage(), nil
	}

	at := r.now().UTC()
	scores := make([]CompositeScore, len(pool))
	partial, scored := r.scorePool(ctx, len(pool), func(i int) {
		scores[i] = r.registry.Score(pool[i], subject, at)
	})

	ranked := make([]rankedCandidate, 0, len(pool))
	for i := range pool {
		if !scored[i] {
			continue
		}
		ranked = append(ranked, rankedCandidate{id: pool[i].ID, tieBreak: pool[i].UpdatedAt, score: scores[i]})
	}

	return paginate(ranked, limit, offset, partial), nil
}

type rankedCandidate struct {
	id       uuid.UUID
	tieBreak time.Time
	score    CompositeScore
}

// scorePool evaluates indices [0,n) on a bounded worker pool. Candidates are
// independent, so there is no shared mutable state beyond the per-index
// result slots. When the context expires, dispatch stops and the already
// evaluated prefix is returned as a partial result.
func (r *Ranker) scorePool(ctx context.Context, n int, eval func(i int)) (bool, []bool) {
	scored := make([]bool, n)

	workers := r.workers
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				eval(i)
				scored[i] = true
			}
		}()
	}

	partial := false
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			partial = true
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return partial, scored
}

func paginate(ranked []rankedCandidate, limit, offset int, partial bool) Page {
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score.Value != b.score.Value {
			return a.score.Value > b.score.Value
		}
		if !a.tieBreak.Equal(b.tieBreak) {
			return a.tieBreak.After(b.tieBreak)
		}
		return bytes.Compare(a.id[:], b.id[:]) < 0
	})

	total := len(ranked)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]Recommendation, 0, end-start)
	for _, rc := range ranked[start:end] {
		out = append(out, Recommendation{CandidateID: rc.id, Score: rc.score})
	}

	return Page{Recommendations: out, Total: total, Partial: partial}
}

func emptyPage() Page {
	return Page{Recommendations: []Recommendation{}, Total: 0}
}
