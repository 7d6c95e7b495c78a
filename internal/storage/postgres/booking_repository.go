package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Subby575/irctc/internal/domain"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingDetailColumns = `
b.id, b.train_id, b.user_id, b.no_of_seats, b.seat_numbers, b.created_at,
t.id, t.name, t.source, t.destination, t.seat_capacity, t.arrival_source, t.arrival_destination, t.created_at`

func (r *BookingRepository) GetBookingDetail(ctx context.Context, bookingID string) (domain.BookingDetail, error) {
	const query = `
SELECT` + bookingDetailColumns + `
FROM bookings b
JOIN trains t ON t.id = b.train_id
WHERE b.id = $1`

	detail, err := scanBookingDetail(r.pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.BookingDetail{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.BookingDetail{}, domain.ErrBookingNotFound
		}
		return domain.BookingDetail{}, fmt.Errorf("get booking: %w", err)
	}
	return detail, nil
}

func (r *BookingRepository) ListBookingsByUser(ctx context.Context, userID string) ([]domain.BookingDetail, error) {
	const query = `
SELECT` + bookingDetailColumns + `
FROM bookings b
JOIN trains t ON t.id = b.train_id
WHERE b.user_id = $1
ORDER BY b.created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var details []domain.BookingDetail
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		details = append(details, detail)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate bookings: %w", rows.Err())
	}
	return details, nil
}

func scanBookingDetail(row pgx.Row) (domain.BookingDetail, error) {
	var d domain.BookingDetail
	var seats []int32
	err := row.Scan(
		&d.Booking.ID,
		&d.Booking.TrainID,
		&d.Booking.UserID,
		&d.Booking.NoOfSeats,
		&seats,
		&d.Booking.CreatedAt,
		&d.Train.ID,
		&d.Train.Name,
		&d.Train.Source,
		&d.Train.Destination,
		&d.Train.SeatCapacity,
		&d.Train.ArrivalSource,
		&d.Train.ArrivalDestination,
		&d.Train.CreatedAt,
	)
	if err != nil {
		return domain.BookingDetail{}, err
	}
	d.Booking.SeatNumbers = toInts(seats)
	return d, nil
}
