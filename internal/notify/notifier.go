package notify

import (
	"context"
	"log"

	"github.com/Domenick1991/flightservice/internal/kafka"
)

// Sender delivers reservation notifications. Stubbed to the worker log until
// a real channel (email, push) is wired up.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	log.Printf("notify: %s for reservation %d (day %d, %d leg(s), total %d)",
		event.Type, event.ReservationID, event.Day, event.Legs, event.TotalPrice)
	return nil
}
