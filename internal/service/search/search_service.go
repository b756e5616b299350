package search

import (
	"context"

	"github.com/Domenick1991/flightservice/internal/cache"
	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/repository"
)

type SearchUseCase interface {
	Search(ctx context.Context, sessionID, origin, dest string, directOnly bool, day, limit int) ([]domain.Itinerary, error)
}

type SearchService struct {
	flights     repository.FlightRepository
	itineraries cache.ItineraryCache
}

func NewSearchService(flights repository.FlightRepository, itineraries cache.ItineraryCache) *SearchService {
	return &SearchService{flights: flights, itineraries: itineraries}
}

// Search composes the ranked itinerary list for one session: direct flights
// first, then, unless directOnly, connecting pairs filling whatever budget the
// direct results left. Indices are assigned in ranking order starting at 0 and
// the whole list replaces the session's previous numbering. An empty result is
// not an error. On any failure the cache stays cleared, so the previous
// search's indices can never be booked afterward.
func (s *SearchService) Search(ctx context.Context, sessionID, origin, dest string, directOnly bool, day, limit int) ([]domain.Itinerary, error) {
	if err := s.itineraries.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []domain.Itinerary{}, nil
	}

	direct, err := s.flights.Direct(ctx, origin, dest, day, limit)
	if err != nil {
		return nil, err
	}
	itineraries := make([]domain.Itinerary, 0, limit)
	for _, leg := range direct {
		itineraries = append(itineraries, domain.NewDirectItinerary(len(itineraries), leg))
	}

	if !directOnly {
		if budget := limit - len(itineraries); budget > 0 {
			pairs, err := s.flights.Connecting(ctx, origin, dest, day, budget)
			if err != nil {
				return nil, err
			}
			for _, pair := range pairs {
				itineraries = append(itineraries, domain.NewConnectingItinerary(len(itineraries), pair[0], pair[1]))
			}
		}
	}

	if len(itineraries) == 0 {
		return itineraries, nil
	}
	if err := s.itineraries.Replace(ctx, sessionID, itineraries); err != nil {
		_ = s.itineraries.Clear(ctx, sessionID)
		return nil, err
	}
	return itineraries, nil
}

var _ SearchUseCase = (*SearchService)(nil)
