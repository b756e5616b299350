package reservation

import (
	"context"
	"log"
	"strconv"

	"github.com/Domenick1991/flightservice/internal/cache"
	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/kafka"
	"github.com/Domenick1991/flightservice/internal/repository"
)

type ReservationUseCase interface {
	Book(ctx context.Context, sessionID string, index int) (int64, error)
	Pay(ctx context.Context, username string, reservationID int64) (int, error)
	Cancel(ctx context.Context, username string, reservationID int64) error
	List(ctx context.Context) ([]domain.Reservation, error)
	RemindUnpaid(ctx context.Context) ([]domain.Reservation, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// ReservationService is the transactional core. Each public operation runs
// its check-then-act sequence inside exactly one serializable transaction;
// a business-rule violation aborts the transaction via the returned error
// and reaches the caller as a typed domain error.
type ReservationService struct {
	txr          repository.TxRunner
	reservations repository.ReservationRepository
	users        repository.UserRepository
	itineraries  cache.ItineraryCache
	producer     Producer
	topic        string
}

type ReservationServiceOption func(*ReservationService)

func WithProducer(producer Producer, topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewReservationService(
	txr repository.TxRunner,
	reservations repository.ReservationRepository,
	users repository.UserRepository,
	itineraries cache.ItineraryCache,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		txr:          txr,
		reservations: reservations,
		users:        users,
		itineraries:  itineraries,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book resolves a cached itinerary index and persists it as a new
// reservation. The day-conflict scan runs over every reservation in the
// table, not just the acting user's: reservations carry no owner. Capacity is
// checked against the snapshot captured at search time and never decremented.
// The new id is max(surviving id)+1, so ids stay strictly increasing while
// the table is non-empty.
func (s *ReservationService) Book(ctx context.Context, sessionID string, index int) (int64, error) {
	itinerary, err := s.itineraries.Lookup(ctx, sessionID, index)
	if err != nil {
		return 0, err
	}

	var booked *domain.Reservation
	err = s.txr.RunSerializable(ctx, func(q repository.Querier) error {
		days, err := s.reservations.ReservedDays(ctx, q)
		if err != nil {
			return err
		}
		for _, day := range days {
			if day == itinerary.Day {
				return domain.ErrSameDayConflict
			}
		}

		for _, leg := range itinerary.Legs {
			if leg.Capacity == 0 {
				return domain.ErrNoCapacity
			}
		}

		id, err := s.reservations.NextID(ctx, q)
		if err != nil {
			return err
		}
		booked = &domain.Reservation{
			ID:     id,
			Paid:   false,
			Legs:   itinerary.Legs,
			Day:    itinerary.Day,
			Price:  itinerary.Price,
			Direct: itinerary.Direct,
		}
		return s.reservations.Insert(ctx, q, booked)
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, "reservation_booked", "", booked)
	return booked.ID, nil
}

// Pay debits the acting session's balance, not necessarily the booker's:
// without an owner column there is no way to tell them apart. A paid
// reservation is reported exactly like a missing one.
func (s *ReservationService) Pay(ctx context.Context, username string, reservationID int64) (int, error) {
	var (
		balance int
		paid    *domain.Reservation
	)
	err := s.txr.RunSerializable(ctx, func(q repository.Querier) error {
		res, err := s.reservations.GetByID(ctx, q, reservationID)
		if err != nil {
			return err
		}
		if res.Paid {
			return domain.ErrReservationNotFound
		}

		current, err := s.users.Balance(ctx, q, username)
		if err != nil {
			return err
		}
		if current < res.Price {
			return &domain.InsufficientBalanceError{Balance: current, Cost: res.Price}
		}

		balance = current - res.Price
		if err := s.users.UpdateBalance(ctx, q, username, balance); err != nil {
			return err
		}
		if err := s.reservations.SetPaid(ctx, q, res.ID); err != nil {
			return err
		}
		res.Paid = true
		paid = res
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, "reservation_paid", username, paid)
	return balance, nil
}

// Cancel deletes the matching reservation and refunds its total price to the
// acting session's balance. The id is never handed out again while any other
// reservation survives.
func (s *ReservationService) Cancel(ctx context.Context, username string, reservationID int64) error {
	var canceled *domain.Reservation
	err := s.txr.RunSerializable(ctx, func(q repository.Querier) error {
		res, err := s.reservations.GetByID(ctx, q, reservationID)
		if err != nil {
			return err
		}
		if err := s.reservations.Delete(ctx, q, res.ID); err != nil {
			return err
		}

		balance, err := s.users.Balance(ctx, q, username)
		if err != nil {
			return err
		}
		if err := s.users.UpdateBalance(ctx, q, username, balance+res.Price); err != nil {
			return err
		}
		canceled = res
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, "reservation_canceled", username, canceled)
	return nil
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.List(ctx)
}

// RemindUnpaid publishes a payment reminder for every unpaid reservation.
// Driven by the worker's sweep ticker.
func (s *ReservationService) RemindUnpaid(ctx context.Context) ([]domain.Reservation, error) {
	unpaid, err := s.reservations.ListUnpaid(ctx)
	if err != nil {
		return nil, err
	}
	for i := range unpaid {
		s.publish(ctx, "payment_reminder", "", &unpaid[i])
	}
	return unpaid, nil
}

func (s *ReservationService) publish(ctx context.Context, eventType, username string, res *domain.Reservation) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID,
		Username:      username,
		Day:           res.Day,
		TotalPrice:    res.Price,
		Paid:          res.Paid,
		Legs:          len(res.Legs),
	}
	key := strconv.FormatInt(res.ID, 10)
	if err := s.producer.Publish(ctx, s.topic, key, event); err != nil {
		log.Printf("publish %s event for reservation %d: %v", eventType, res.ID, err)
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
