package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Subby575/irctc/internal/domain"
)

// ReservationRepository is the booking ledger plus the train row lock the
// reservation engine serializes on.
type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ReservationRepository) GetTrain(ctx context.Context, trainID string) (domain.Train, error) {
	return r.getTrain(ctx, trainID, false)
}

// GetTrainForUpdate reads the train under FOR UPDATE, blocking concurrent
// reservation transactions for the same train until commit or rollback.
func (r *ReservationRepository) GetTrainForUpdate(ctx context.Context, trainID string) (domain.Train, error) {
	return r.getTrain(ctx, trainID, true)
}

func (r *ReservationRepository) getTrain(ctx context.Context, trainID string, forUpdate bool) (domain.Train, error) {
	query := `
SELECT id, name, source, destination, seat_capacity, arrival_source, arrival_destination, created_at
FROM trains
WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var t domain.Train
	err := r.queryRow(ctx, query, trainID).Scan(
		&t.ID,
		&t.Name,
		&t.Source,
		&t.Destination,
		&t.SeatCapacity,
		&t.ArrivalSource,
		&t.ArrivalDestination,
		&t.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Train{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Train{}, domain.ErrTrainNotFound
		}
		return domain.Train{}, fmt.Errorf("get train: %w", err)
	}
	return t, nil
}

func (r *ReservationRepository) SumBookedSeats(ctx context.Context, trainID string) (int, error) {
	const query = `SELECT COALESCE(SUM(no_of_seats), 0) FROM bookings WHERE train_id = $1`

	var total int
	if err := r.queryRow(ctx, query, trainID).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("sum booked seats: %w", err)
	}
	return total, nil
}

// ListSeatNumbers returns every seat number already assigned on the train,
// flattened across all its bookings.
func (r *ReservationRepository) ListSeatNumbers(ctx context.Context, trainID string) ([]int, error) {
	const query = `SELECT seat_numbers FROM bookings WHERE train_id = $1`

	rows, err := r.query(ctx, query, trainID)
	if err != nil {
		return nil, fmt.Errorf("list seat numbers: %w", err)
	}
	defer rows.Close()

	var taken []int
	for rows.Next() {
		var seats []int32
		if err := rows.Scan(&seats); err != nil {
			return nil, fmt.Errorf("scan seat numbers: %w", err)
		}
		taken = append(taken, toInts(seats)...)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate seat numbers: %w", rows.Err())
	}
	return taken, nil
}

func (r *ReservationRepository) CreateBooking(ctx context.Context, booking domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, train_id, user_id, no_of_seats, seat_numbers, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		booking.ID,
		booking.TrainID,
		booking.UserID,
		booking.NoOfSeats,
		toInt32s(booking.SeatNumbers),
		booking.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrTrainNotFound
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
