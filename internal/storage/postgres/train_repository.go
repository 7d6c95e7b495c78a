package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Subby575/irctc/internal/domain"
)

type TrainRepository struct {
	pool *pgxpool.Pool
}

func NewTrainRepository(pool *pgxpool.Pool) *TrainRepository {
	return &TrainRepository{pool: pool}
}

func (r *TrainRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *TrainRepository) CreateTrain(ctx context.Context, train domain.Train) error {
	const stmt = `
INSERT INTO trains (id, name, source, destination, seat_capacity, arrival_source, arrival_destination, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		train.ID,
		train.Name,
		train.Source,
		train.Destination,
		train.SeatCapacity,
		train.ArrivalSource,
		train.ArrivalDestination,
		train.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create train: %w", err)
	}
	return nil
}

func (r *TrainRepository) GetTrainForUpdate(ctx context.Context, trainID string) (domain.Train, error) {
	const query = `
SELECT id, name, source, destination, seat_capacity, arrival_source, arrival_destination, created_at
FROM trains
WHERE id = $1
FOR UPDATE`

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

func (r *TrainRepository) UpdateSeatCapacity(ctx context.Context, trainID string, capacity int) error {
	const stmt = `UPDATE trains SET seat_capacity = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, trainID, capacity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update seat capacity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTrainNotFound
	}
	return nil
}

func (r *TrainRepository) DeleteTrain(ctx context.Context, trainID string) error {
	const stmt = `DELETE FROM trains WHERE id = $1`

	tag, err := r.exec(ctx, stmt, trainID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete train: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTrainNotFound
	}
	return nil
}

// ListTrains returns trains on a route when both legs are given, or every
// train when both are empty.
func (r *TrainRepository) ListTrains(ctx context.Context, source, destination string) ([]domain.Train, error) {
	query := `
SELECT id, name, source, destination, seat_capacity, arrival_source, arrival_destination, created_at
FROM trains
ORDER BY created_at ASC`
	args := []any{}
	if source != "" && destination != "" {
		query = `
SELECT id, name, source, destination, seat_capacity, arrival_source, arrival_destination, created_at
FROM trains
WHERE source = $1 AND destination = $2
ORDER BY created_at ASC`
		args = []any{source, destination}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trains: %w", err)
	}
	defer rows.Close()

	var trains []domain.Train
	for rows.Next() {
		var t domain.Train
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Source,
			&t.Destination,
			&t.SeatCapacity,
			&t.ArrivalSource,
			&t.ArrivalDestination,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan train: %w", err)
		}
		trains = append(trains, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate trains: %w", rows.Err())
	}
	return trains, nil
}

func (r *TrainRepository) SumBookedSeats(ctx context.Context, trainID string) (int, error) {
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

func (r *TrainRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *TrainRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
