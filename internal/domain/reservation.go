package domain

import (
	"fmt"
	"strings"
)

// Reservation is a durable booking of one itinerary. Legs are catalog
// snapshots captured at search time. Reservations carry no owner: every
// conflict and lookup in the system operates over the whole table.
type Reservation struct {
	ID     int64    `json:"reservation_id"`
	Paid   bool     `json:"paid"`
	Legs   []Flight `json:"legs"`
	Day    int      `json:"day"`
	Price  int      `json:"total_price"`
	Direct bool     `json:"direct"`
}

// String renders the reservation block for the listing operation. The first
// leg line carries the reservation total instead of the leg price, and a
// second leg carries its own price; both quirks are part of the wire format.
func (r Reservation) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Reservation %d paid: %t:\n", r.ID, r.Paid)
	for n, leg := range r.Legs {
		if n == 0 {
			sb.WriteString(leg.line(r.Price))
		} else {
			sb.WriteString(leg.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
