package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"campusbridge/internal/domain/matching"
	"campusbridge/internal/repository"

	"github.com/google/uuid"
)

func newTestRegistry(t *testing.T) *matching.Registry {
	t.Helper()
	reg, err := matching.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	return reg
}

func TestCalculateMatch_NilIDs(t *testing.T) {
	uc := NewMatchUsecase(&mockStudentRepo{}, &mockListingRepo{}, newTestRegistry(t))

	if _, err := uc.CalculateMatch(context.Background(), uuid.Nil, uuid.New()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for nil student, got %v", err)
	}
	if _, err := uc.CalculateMatch(context.Background(), uuid.New(), uuid.Nil); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound for nil listing, got %v", err)
	}
}

func TestCalculateMatch_NotFound(t *testing.T) {
	uc := NewMatchUsecase(
		&mockStudentRepo{snapErr: repository.ErrStudentNotFound},
		&mockListingRepo{},
		newTestRegistry(t),
	)
	if _, err := uc.CalculateMatch(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}

	uc = NewMatchUsecase(
		&mockStudentRepo{snap: repository.StudentSnapshot{ID: uuid.New()}},
		&mockListingRepo{snapErr: repository.ErrListingNotFound},
		newTestRegistry(t),
	)
	if _, err := uc.CalculateMatch(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestCalculateMatch_BreakdownAndEvidence(t *testing.T) {
	students := &mockStudentRepo{snap: repository.StudentSnapshot{
		ID:     uuid.New(),
		Skills: []string{"Go", "  sql ", "docker"},
	}}
	listings := &mockListingRepo{snap: repository.ListingSnapshot{
		ID:             uuid.New(),
		RequiredSkills: []string{"go", "sql", "kubernetes"},
	}}

	uc := NewMatchUsecase(students, listings, newTestRegistry(t))

	res, err := uc.CalculateMatch(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if res.CompositeScore < 0 || res.CompositeScore > 100 {
		t.Fatalf("composite score out of range: %v", res.CompositeScore)
	}

	if len(res.Breakdown) != 6 {
		t.Fatalf("expected 6 breakdown entries, got %d", len(res.Breakdown))
	}
	var weightSum float64
	for _, entry := range res.Breakdown {
		if entry.Score < 0 || entry.Score > 1 {
			t.Fatalf("signal %s out of [0,1]: %v", entry.Signal, entry.Score)
		}
		weightSum += entry.Weight
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		t.Fatalf("breakdown weights should sum to 1.0, got %v", weightSum)
	}

	if got, want := res.MatchedSkills, []string{"go", "sql"}; !equalStrings(got, want) {
		t.Fatalf("matched skills = %v, want %v", got, want)
	}
	if got, want := res.MissingSkills, []string{"kubernetes"}; !equalStrings(got, want) {
		t.Fatalf("missing skills = %v, want %v", got, want)
	}
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
