package cache

import (
	"context"
	"sync"

	"github.com/Domenick1991/flightservice/internal/domain"
)

// MemoryItineraryCache keeps the per-session numbering in process memory.
// Suitable for single-node runs and tests; sessions on other nodes cannot
// see it.
type MemoryItineraryCache struct {
	mu       sync.RWMutex
	searches map[string][]domain.Itinerary
}

func NewMemoryItineraryCache() *MemoryItineraryCache {
	return &MemoryItineraryCache{searches: make(map[string][]domain.Itinerary)}
}

func (c *MemoryItineraryCache) Replace(ctx context.Context, sessionID string, itineraries []domain.Itinerary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searches[sessionID] = append([]domain.Itinerary(nil), itineraries...)
	return nil
}

func (c *MemoryItineraryCache) Lookup(ctx context.Context, sessionID string, index int) (*domain.Itinerary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	itineraries, ok := c.searches[sessionID]
	if !ok || index < 0 || index >= len(itineraries) {
		return nil, domain.ErrInvalidItinerary
	}
	it := itineraries[index]
	return &it, nil
}

func (c *MemoryItineraryCache) Clear(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.searches, sessionID)
	return nil
}

var _ ItineraryCache = (*MemoryItineraryCache)(nil)
