package usecase

import (
	"context"
	"errors"
	"testing"

	"campusbridge/internal/repository"

	"github.com/google/uuid"
)

func TestListingPublish_InvalidatesRecommendationCache(t *testing.T) {
	listings := &mockListingRepo{}
	cache := newMockCache()
	uc := NewListingUsecase(listings, cache, nil)

	if err := uc.Publish(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if listings.markCalls != 1 {
		t.Fatalf("expected one MarkPublished call, got %d", listings.markCalls)
	}
	if len(cache.deletedPatterns) != 1 || cache.deletedPatterns[0] != RecommendationCachePattern() {
		t.Fatalf("expected invalidation of %q, got %v", RecommendationCachePattern(), cache.deletedPatterns)
	}
}

func TestListingPublish_NotFound(t *testing.T) {
	listings := &mockListingRepo{markErr: repository.ErrListingNotFound}
	uc := NewListingUsecase(listings, newMockCache(), nil)

	if err := uc.Publish(context.Background(), uuid.New()); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestListingPublish_NilID(t *testing.T) {
	listings := &mockListingRepo{}
	uc := NewListingUsecase(listings, newMockCache(), nil)

	if err := uc.Publish(context.Background(), uuid.Nil); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
	if listings.markCalls != 0 {
		t.Fatalf("expected no repo call for nil id")
	}
}
