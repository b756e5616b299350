package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFlight() Flight {
	return Flight{
		ID:         12,
		DayOfMonth: 10,
		CarrierID:  "DL",
		FlightNum:  "117",
		OriginCity: "NYC",
		DestCity:   "LA",
		Duration:   180,
		Capacity:   10,
		Price:      300,
	}
}

func TestFlight_String(t *testing.T) {
	want := "ID: 12 Day: 10 Carrier: DL Number: 117 Origin: NYC Dest: LA Duration: 180 Capacity: 10 Price: 300"
	assert.Equal(t, want, testFlight().String())
}

func TestItinerary_String_Direct(t *testing.T) {
	it := NewDirectItinerary(0, testFlight())

	want := "Itinerary 0: 1 flight(s), 180 minutes\n" +
		"ID: 12 Day: 10 Carrier: DL Number: 117 Origin: NYC Dest: LA Duration: 180 Capacity: 10 Price: 300\n"
	assert.Equal(t, want, it.String())
	assert.True(t, it.Direct)
	assert.Equal(t, 300, it.Price)
}

func TestItinerary_String_Connecting(t *testing.T) {
	first := testFlight()
	first.DestCity = "DEN"
	second := Flight{
		ID: 34, DayOfMonth: 10, CarrierID: "UA", FlightNum: "89",
		OriginCity: "DEN", DestCity: "LA", Duration: 120, Capacity: 5, Price: 150,
	}
	it := NewConnectingItinerary(1, first, second)

	want := "Itinerary 1: 2 flight(s), 300 minutes\n" +
		"ID: 12 Day: 10 Carrier: DL Number: 117 Origin: NYC Dest: DEN Duration: 180 Capacity: 10 Price: 300\n" +
		"ID: 34 Day: 10 Carrier: UA Number: 89 Origin: DEN Dest: LA Duration: 120 Capacity: 5 Price: 150\n"
	assert.Equal(t, want, it.String())
	assert.Equal(t, 450, it.Price)
	assert.False(t, it.Direct)
}

func TestReservation_String_Direct(t *testing.T) {
	res := Reservation{ID: 1, Paid: false, Legs: []Flight{testFlight()}, Day: 10, Price: 300, Direct: true}

	want := "Reservation 1 paid: false:\n" +
		"ID: 12 Day: 10 Carrier: DL Number: 117 Origin: NYC Dest: LA Duration: 180 Capacity: 10 Price: 300\n"
	assert.Equal(t, want, res.String())
}

// A two-leg reservation prints the reservation total on the first leg line
// and the second leg's own price on the second.
func TestReservation_String_Connecting(t *testing.T) {
	first := testFlight()
	first.DestCity = "DEN"
	second := Flight{
		ID: 34, DayOfMonth: 10, CarrierID: "UA", FlightNum: "89",
		OriginCity: "DEN", DestCity: "LA", Duration: 120, Capacity: 5, Price: 150,
	}
	res := Reservation{ID: 2, Paid: true, Legs: []Flight{first, second}, Day: 10, Price: 450, Direct: false}

	want := "Reservation 2 paid: true:\n" +
		"ID: 12 Day: 10 Carrier: DL Number: 117 Origin: NYC Dest: DEN Duration: 180 Capacity: 10 Price: 450\n" +
		"ID: 34 Day: 10 Carrier: UA Number: 89 Origin: DEN Dest: LA Duration: 120 Capacity: 5 Price: 150\n"
	assert.Equal(t, want, res.String())
}
