package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"campusbridge/internal/repository"
	"campusbridge/internal/ws"

	"github.com/google/uuid"
)

// ListingUsecase covers the one listing mutation the engine cares about:
// publishing. A publish grows every student's candidate pool, so cached
// recommendation pages are invalidated eagerly and connected clients are told
// to refetch.
type ListingUsecase interface {
	Publish(ctx context.Context, listingID uuid.UUID) error
}

type Listing struct {
	listings repository.ListingRepository
	cache    RecommendationCache
	logger   *log.Logger
	now      func() time.Time
}

func NewListingUsecase(listings repository.ListingRepository, cache RecommendationCache, logger *log.Logger) *Listing {
	return &Listing{listings: listings, cache: cache, logger: logger, now: time.Now}
}

func (u *Listing) Publish(ctx context.Context, listingID uuid.UUID) error {
	if listingID == uuid.Nil {
		return ErrListingNotFound
	}

	if err := u.listings.MarkPublished(ctx, listingID, u.now()); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return ErrListingNotFound
		}
		return ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, RecommendationCachePattern()); err != nil && u.logger != nil {
			u.logger.Printf("[Listing] cache invalidation failed: %v", err)
		}
	}

	ws.NotifyListingPublished(listingID)
	return nil
}
