package domain

import (
	"errors"
	"fmt"
)

// Business-rule violations detected inside an open transaction. The session
// layer maps each of these to its canned outcome string; anything else coming
// out of an operation is treated as a store failure.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNegativeBalance    = errors.New("initial balance must be nonnegative")
	ErrInvalidItinerary   = errors.New("no such itinerary")
	ErrSameDayConflict    = errors.New("reservation exists on the same day")
	ErrNoCapacity         = errors.New("flight has no capacity")

	// A paid reservation and a missing one are deliberately indistinguishable.
	ErrReservationNotFound = errors.New("unpaid reservation not found")
)

// InsufficientBalanceError reports the balance/cost pair the pay outcome
// string needs.
type InsufficientBalanceError struct {
	Balance int
	Cost    int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("balance %d below itinerary cost %d", e.Balance, e.Cost)
}
