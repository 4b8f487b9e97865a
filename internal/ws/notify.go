package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type ListingPublishedEvent struct {
	Type      string `json:"type"`
	ListingID string `json:"listing_id"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyListingPublished tells connected clients a new listing entered the
// candidate pool so cached recommendation views should be refetched.
func NotifyListingPublished(listingID uuid.UUID) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if listingID == uuid.Nil {
		return
	}

	evt := ListingPublishedEvent{
		Type:      "listing_published",
		ListingID: listingID.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
