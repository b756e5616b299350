package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationRepository persists booked itineraries. The row layout keeps the
// historical 20-field shape: a second leg is stored inline, with -1/"" fillers
// when the reservation is direct. Methods taking a Querier run inside the
// caller's serializable transaction; the listing methods read from the pool.
type ReservationRepository interface {
	ReservedDays(ctx context.Context, q Querier) ([]int, error)
	NextID(ctx context.Context, q Querier) (int64, error)
	Insert(ctx context.Context, q Querier, r *domain.Reservation) error
	GetByID(ctx context.Context, q Querier, id int64) (*domain.Reservation, error)
	SetPaid(ctx context.Context, q Querier, id int64) error
	Delete(ctx context.Context, q Querier, id int64) error
	List(ctx context.Context) ([]domain.Reservation, error)
	ListUnpaid(ctx context.Context) ([]domain.Reservation, error)
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

const reservationColumns = `reservation_id, paid, fid1, fid2, day, total_price, capacity1, capacity2,
	carrier1, carrier2, flight_num1, flight_num2, origin_city1, origin_city2, dest_city1, dest_city2,
	duration1, duration2, price2, direct`

const insertReservationSQL = `
	INSERT INTO reservations (` + reservationColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

func (r *PGReservationRepository) ReservedDays(ctx context.Context, q Querier) ([]int, error) {
	rows, err := q.Query(ctx, `SELECT day FROM reservations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []int
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// NextID anchors to the maximum surviving id, so the counter restarts at 1
// once the table empties.
func (r *PGReservationRepository) NextID(ctx context.Context, q Querier) (int64, error) {
	var next int64
	err := q.QueryRow(ctx, `SELECT COALESCE(MAX(reservation_id), 0) + 1 FROM reservations`).Scan(&next)
	return next, err
}

func (r *PGReservationRepository) Insert(ctx context.Context, q Querier, res *domain.Reservation) error {
	first := res.Legs[0]
	second := domain.Flight{ID: -1, Capacity: -1, Duration: -1, Price: -1}
	if len(res.Legs) > 1 {
		second = res.Legs[1]
	}
	_, err := q.Exec(ctx, insertReservationSQL,
		res.ID, res.Paid, first.ID, second.ID, res.Day, res.Price, first.Capacity, second.Capacity,
		first.CarrierID, second.CarrierID, first.FlightNum, second.FlightNum,
		first.OriginCity, second.OriginCity, first.DestCity, second.DestCity,
		first.Duration, second.Duration, second.Price, res.Direct)
	return err
}

func (r *PGReservationRepository) GetByID(ctx context.Context, q Querier, id int64) (*domain.Reservation, error) {
	row := q.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE reservation_id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *PGReservationRepository) SetPaid(ctx context.Context, q Querier, id int64) error {
	_, err := q.Exec(ctx, `UPDATE reservations SET paid = true WHERE reservation_id = $1`, id)
	return err
}

func (r *PGReservationRepository) Delete(ctx context.Context, q Querier, id int64) error {
	_, err := q.Exec(ctx, `DELETE FROM reservations WHERE reservation_id = $1`, id)
	return err
}

func (r *PGReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY reservation_id ASC`)
}

func (r *PGReservationRepository) ListUnpaid(ctx context.Context) ([]domain.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE paid = false ORDER BY reservation_id ASC`)
}

func (r *PGReservationRepository) list(ctx context.Context, sql string) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var (
		res           domain.Reservation
		first, second domain.Flight
		price2        int
	)
	if err := row.Scan(
		&res.ID, &res.Paid, &first.ID, &second.ID, &res.Day, &res.Price, &first.Capacity, &second.Capacity,
		&first.CarrierID, &second.CarrierID, &first.FlightNum, &second.FlightNum,
		&first.OriginCity, &second.OriginCity, &first.DestCity, &second.DestCity,
		&first.Duration, &second.Duration, &price2, &res.Direct,
	); err != nil {
		return nil, err
	}

	first.DayOfMonth = res.Day
	if res.Direct {
		first.Price = res.Price
		res.Legs = []domain.Flight{first}
		return &res, nil
	}
	first.Price = res.Price - price2
	second.DayOfMonth = res.Day
	second.Price = price2
	res.Legs = []domain.Flight{first, second}
	return &res, nil
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
