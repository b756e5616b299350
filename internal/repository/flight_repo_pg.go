package repository

import (
	"context"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightRepository reads the external flight catalog. Both queries return
// rows already ranked the way search presents them: ascending total duration,
// ties broken by flight id.
type FlightRepository interface {
	Direct(ctx context.Context, origin, dest string, day, limit int) ([]domain.Flight, error)
	Connecting(ctx context.Context, origin, dest string, day, limit int) ([][2]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const directSearchSQL = `
	SELECT fid, day_of_month, carrier_id, flight_num, origin_city, dest_city, actual_time, capacity, price
	FROM flights
	WHERE origin_city = $1 AND dest_city = $2 AND day_of_month = $3 AND canceled = 0
	ORDER BY actual_time ASC, fid ASC
	LIMIT $4`

const connectingSearchSQL = `
	SELECT f1.fid, f1.day_of_month, f1.carrier_id, f1.flight_num, f1.origin_city, f1.dest_city, f1.actual_time, f1.capacity, f1.price,
	       f2.fid, f2.day_of_month, f2.carrier_id, f2.flight_num, f2.origin_city, f2.dest_city, f2.actual_time, f2.capacity, f2.price
	FROM flights f1
	JOIN flights f2 ON f2.origin_city = f1.dest_city AND f2.day_of_month = f1.day_of_month
	WHERE f1.origin_city = $1 AND f2.dest_city = $2 AND f1.day_of_month = $3
	  AND f1.canceled = 0 AND f2.canceled = 0
	ORDER BY f1.actual_time + f2.actual_time ASC, f1.fid ASC, f2.fid ASC
	LIMIT $4`

func (r *PGFlightRepository) Direct(ctx context.Context, origin, dest string, day, limit int) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, directSearchSQL, origin, dest, day, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Connecting(ctx context.Context, origin, dest string, day, limit int) ([][2]domain.Flight, error) {
	rows, err := r.db.Query(ctx, connectingSearchSQL, origin, dest, day, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := make([][2]domain.Flight, 0)
	for rows.Next() {
		var first, second domain.Flight
		if err := rows.Scan(
			&first.ID, &first.DayOfMonth, &first.CarrierID, &first.FlightNum, &first.OriginCity, &first.DestCity, &first.Duration, &first.Capacity, &first.Price,
			&second.ID, &second.DayOfMonth, &second.CarrierID, &second.FlightNum, &second.OriginCity, &second.DestCity, &second.Duration, &second.Capacity, &second.Price,
		); err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]domain.Flight{first, second})
	}
	return pairs, rows.Err()
}

func scanFlight(rows pgx.Rows) (domain.Flight, error) {
	var f domain.Flight
	err := rows.Scan(&f.ID, &f.DayOfMonth, &f.CarrierID, &f.FlightNum, &f.OriginCity, &f.DestCity, &f.Duration, &f.Capacity, &f.Price)
	return f, err
}

var _ FlightRepository = (*PGFlightRepository)(nil)
