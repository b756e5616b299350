package domain

import "fmt"

// Flight is one row of the read-only flight catalog. The reservation side
// never mutates it; booked legs are stored as snapshots taken at search time.
type Flight struct {
	ID         int64  `json:"fid"`
	DayOfMonth int    `json:"day_of_month"`
	CarrierID  string `json:"carrier_id"`
	FlightNum  string `json:"flight_num"`
	OriginCity string `json:"origin_city"`
	DestCity   string `json:"dest_city"`
	Duration   int    `json:"actual_time"`
	Capacity   int    `json:"capacity"`
	Price      int    `json:"price"`
	Canceled   bool   `json:"canceled"`
}

// String renders the flight line in the exact format expected by existing
// consumers. Do not change the field order or spacing.
func (f Flight) String() string {
	return f.line(f.Price)
}

// line is String with an overridden price column. The reservation listing
// prints the reservation total on the first leg instead of the leg price.
func (f Flight) line(price int) string {
	return fmt.Sprintf("ID: %d Day: %d Carrier: %s Number: %s Origin: %s Dest: %s Duration: %d Capacity: %d Price: %d",
		f.ID, f.DayOfMonth, f.CarrierID, f.FlightNum, f.OriginCity, f.DestCity, f.Duration, f.Capacity, price)
}
