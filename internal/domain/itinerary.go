package domain

import (
	"fmt"
	"strings"
)

// Itinerary is one bookable unit produced by a search: one leg (direct) or
// two legs (connecting). Indices are session-scoped and run 0..k-1 within a
// single search; every new search replaces the whole numbering.
type Itinerary struct {
	Index  int      `json:"index"`
	Legs   []Flight `json:"legs"`
	Day    int      `json:"day"`
	Price  int      `json:"total_price"`
	Direct bool     `json:"direct"`
}

func NewDirectItinerary(index int, leg Flight) Itinerary {
	return Itinerary{
		Index:  index,
		Legs:   []Flight{leg},
		Day:    leg.DayOfMonth,
		Price:  leg.Price,
		Direct: true,
	}
}

func NewConnectingItinerary(index int, first, second Flight) Itinerary {
	return Itinerary{
		Index:  index,
		Legs:   []Flight{first, second},
		Day:    first.DayOfMonth,
		Price:  first.Price + second.Price,
		Direct: false,
	}
}

// Duration is the summed flight time across legs, the ranking key of a search.
func (i Itinerary) Duration() int {
	total := 0
	for _, leg := range i.Legs {
		total += leg.Duration
	}
	return total
}

// String renders the itinerary header line followed by one line per leg:
//
//	Itinerary [n]: [legs] flight(s), [minutes] minutes
//	ID: ... Day: ... Carrier: ...
func (i Itinerary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Itinerary %d: %d flight(s), %d minutes\n", i.Index, len(i.Legs), i.Duration())
	for _, leg := range i.Legs {
		sb.WriteString(leg.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
