package usecase

import (
	"context"
	"errors"
	"time"

	"campusbridge/internal/domain/matching"
	"campusbridge/internal/repository"

	"github.com/google/uuid"
)

// MatchUsecase explains one (student, listing) pair: the composite score and
// its full per-signal breakdown, without ranking anything.
type MatchUsecase interface {
	CalculateMatch(ctx context.Context, studentID, listingID uuid.UUID) (MatchResult, error)
}

type MatchResult struct {
	CompositeScore float64
	MatchedSkills  []string
	MissingSkills  []string
	Breakdown      []SignalEntry
}

type Match struct {
	students repository.StudentRepository
	listings repository.ListingRepository
	registry *matching.Registry
	now      func() time.Time
}

func NewMatchUsecase(students repository.StudentRepository, listings repository.ListingRepository, registry *matching.Registry) *Match {
	return &Match{students: students, listings: listings, registry: registry, now: time.Now}
}

func (u *Match) CalculateMatch(ctx context.Context, studentID, listingID uuid.UUID) (MatchResult, error) {
	if studentID == uuid.Nil {
		return MatchResult{}, ErrUnauthorized
	}
	if listingID == uuid.Nil {
		return MatchResult{}, ErrListingNotFound
	}

	student, err := u.students.FindSnapshotByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return MatchResult{}, ErrStudentNotFound
		}
		return MatchResult{}, ErrInternal
	}

	listing, err := u.listings.FindSnapshotByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return MatchResult{}, ErrListingNotFound
		}
		return MatchResult{}, ErrInternal
	}

	cs := u.registry.Score(engineStudent(student), engineListing(listing), u.now().UTC())

	breakdown := make([]SignalEntry, 0, len(cs.Breakdown))
	for _, entry := range cs.Breakdown {
		breakdown = append(breakdown, SignalEntry{
			Signal: string(entry.Name),
			Score:  entry.Score,
			Weight: entry.Weight,
		})
	}

	return MatchResult{
		CompositeScore: cs.Value,
		MatchedSkills:  cs.MatchedSkills,
		MissingSkills:  cs.MissingSkills,
		Breakdown:      breakdown,
	}, nil
}
