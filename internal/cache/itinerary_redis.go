package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ItineraryCache numbers the candidate itineraries of one session's most
// recent search. Replace installs a whole new numbering; Lookup resolves a
// client-supplied index back to concrete legs at booking time. Indices from
// earlier searches are gone the moment Replace or Clear runs.
type ItineraryCache interface {
	Replace(ctx context.Context, sessionID string, itineraries []domain.Itinerary) error
	Lookup(ctx context.Context, sessionID string, index int) (*domain.Itinerary, error)
	Clear(ctx context.Context, sessionID string) error
}

type RedisItineraryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisItineraryCache(cfg RedisConfig, ttl time.Duration) *RedisItineraryCache {
	return &RedisItineraryCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisItineraryCache) Replace(ctx context.Context, sessionID string, itineraries []domain.Itinerary) error {
	payload, err := json.Marshal(itineraries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itinerariesKey(sessionID), payload, c.ttl).Err()
}

func (c *RedisItineraryCache) Lookup(ctx context.Context, sessionID string, index int) (*domain.Itinerary, error) {
	data, err := c.client.Get(ctx, itinerariesKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrInvalidItinerary
		}
		return nil, err
	}

	var itineraries []domain.Itinerary
	if err := json.Unmarshal(data, &itineraries); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(itineraries) {
		return nil, domain.ErrInvalidItinerary
	}
	it := itineraries[index]
	return &it, nil
}

func (c *RedisItineraryCache) Clear(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, itinerariesKey(sessionID)).Err()
}

func itinerariesKey(sessionID string) string {
	return fmt.Sprintf("itineraries:%s", sessionID)
}

var _ ItineraryCache = (*RedisItineraryCache)(nil)
