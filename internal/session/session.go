package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/ratelimit"
	"github.com/Domenick1991/flightservice/internal/service/account"
	"github.com/Domenick1991/flightservice/internal/service/reservation"
	"github.com/Domenick1991/flightservice/internal/service/search"
)

// Canned outcome strings. These are the wire format of the service; existing
// consumers parse them, so they must stay byte-for-byte stable.
const (
	outAlreadyLoggedIn   = "User already logged in\n"
	outLoginFailed       = "Login failed\n"
	outCreateUserFailed  = "Failed to create user\n"
	outSearchFailed      = "Failed to search\n"
	outNoMatch           = "No flights match your selection\n"
	outBookNotLoggedIn   = "Cannot book reservations, not logged in\n"
	outSameDayConflict   = "You cannot book two flights in the same day\n"
	outNoCapacity        = "Flight(s) has no capacity\n"
	outBookingFailed     = "Booking failed\n"
	outPayNotLoggedIn    = "Cannot pay, not logged in\n"
	outListNotLoggedIn   = "Cannot view reservations, not logged in\n"
	outNoReservations    = "No reservations found\n"
	outListFailed        = "Failed to retrieve reservations\n"
	outCancelNotLoggedIn = "Cannot cancel reservations, not logged in\n"
)

// Session is the explicit per-user context replacing the reference
// implementation's process-global state: the logged-in username and the
// identity under which the itinerary cache is keyed. One session drives one
// sequential operation stream; the mutex enforces that even when the HTTP
// layer delivers overlapping requests for the same token.
type Session struct {
	id string

	mu       sync.Mutex
	username string

	accounts     account.AccountUseCase
	search       search.SearchUseCase
	reservations reservation.ReservationUseCase
	limiter      *ratelimit.SessionLimiter
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Login rejects a second login on an already-authenticated session.
func (s *Session) Login(ctx context.Context, username, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.username != "" {
		return outAlreadyLoggedIn
	}
	if err := s.accounts.Login(ctx, username, password); err != nil {
		return outLoginFailed
	}
	s.username = username
	return fmt.Sprintf("Logged in as %s\n", username)
}

func (s *Session) CreateCustomer(ctx context.Context, username, password string, initialBalance int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.accounts.CreateCustomer(ctx, username, password, initialBalance); err != nil {
		return outCreateUserFailed
	}
	return fmt.Sprintf("Created user %s\n", username)
}

// Search does not require a login. A new search always invalidates the
// indices of the previous one, even when it fails.
func (s *Session) Search(ctx context.Context, origin, dest string, directOnly bool, day, limit int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, s.id); err != nil {
			return outSearchFailed
		}
	}

	itineraries, err := s.search.Search(ctx, s.id, origin, dest, directOnly, day, limit)
	if err != nil {
		return outSearchFailed
	}
	if len(itineraries) == 0 {
		return outNoMatch
	}

	var sb strings.Builder
	for _, itinerary := range itineraries {
		sb.WriteString(itinerary.String())
	}
	return sb.String()
}

func (s *Session) Book(ctx context.Context, index int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.username == "" {
		return outBookNotLoggedIn
	}

	id, err := s.reservations.Book(ctx, s.id, index)
	switch {
	case errors.Is(err, domain.ErrInvalidItinerary):
		return fmt.Sprintf("No such itinerary %d\n", index)
	case errors.Is(err, domain.ErrSameDayConflict):
		return outSameDayConflict
	case errors.Is(err, domain.ErrNoCapacity):
		return outNoCapacity
	case err != nil:
		return outBookingFailed
	}
	return fmt.Sprintf("Booked flight(s), reservation ID: %d\n", id)
}

func (s *Session) Pay(ctx context.Context, reservationID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.username == "" {
		return outPayNotLoggedIn
	}

	balance, err := s.reservations.Pay(ctx, s.username, reservationID)
	var insufficient *domain.InsufficientBalanceError
	switch {
	case errors.Is(err, domain.ErrReservationNotFound):
		return fmt.Sprintf("Cannot find unpaid reservation %d under user: %s\n", reservationID, s.username)
	case errors.As(err, &insufficient):
		return fmt.Sprintf("User has only %d in account but itinerary costs %d\n", insufficient.Balance, insufficient.Cost)
	case err != nil:
		return fmt.Sprintf("Failed to pay for reservation %d\n", reservationID)
	}
	return fmt.Sprintf("Paid reservation: %d remaining balance: %d\n", reservationID, balance)
}

func (s *Session) Reservations(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.username == "" {
		return outListNotLoggedIn
	}

	reservations, err := s.reservations.List(ctx)
	if err != nil {
		return outListFailed
	}
	if len(reservations) == 0 {
		return outNoReservations
	}

	var sb strings.Builder
	for _, res := range reservations {
		sb.WriteString(res.String())
	}
	return sb.String()
}

func (s *Session) Cancel(ctx context.Context, reservationID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.username == "" {
		return outCancelNotLoggedIn
	}

	if err := s.reservations.Cancel(ctx, s.username, reservationID); err != nil {
		return fmt.Sprintf("Failed to cancel reservation %d\n", reservationID)
	}
	return fmt.Sprintf("Canceled reservation %d\n", reservationID)
}
