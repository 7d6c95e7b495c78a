package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/Subby575/irctc/internal/clock"
	"github.com/Subby575/irctc/internal/domain"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetTrain(ctx context.Context, trainID string) (domain.Train, error)
	GetTrainForUpdate(ctx context.Context, trainID string) (domain.Train, error)
	SumBookedSeats(ctx context.Context, trainID string) (int, error)
	ListSeatNumbers(ctx context.Context, trainID string) ([]int, error)
	CreateBooking(ctx context.Context, booking domain.Booking) error
}

// ReservationService allocates seats against trains with fixed capacity.
// All reservations for one train are serialized twice over: an in-process
// per-train mutex orders callers within this process, and the repository
// takes a row lock on the train inside the transaction so concurrent
// processes cannot interleave either.
type ReservationService struct {
	repo  ReservationRepository
	clock clock.Clock
	locks *trainLocks
}

func NewReservationService(repo ReservationRepository, clk clock.Clock) *ReservationService {
	return &ReservationService{
		repo:  repo,
		clock: clk,
		locks: newTrainLocks(),
	}
}

type ReserveInput struct {
	TrainID string
	UserID  string
	Seats   int
}

// Reserve books Seats seats on a train, assigning the lowest free seat
// numbers. The occupancy read, allocation, and booking write happen inside
// one transaction under the per-train lock; on any failure no booking is
// written.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) (domain.Booking, error) {
	if in.Seats <= 0 {
		return domain.Booking{}, domain.ErrInvalidSeatCount
	}
	if in.TrainID == "" || in.UserID == "" {
		return domain.Booking{}, domain.ErrInvalidID
	}

	lock := s.locks.forTrain(in.TrainID)
	lock.Lock()
	defer lock.Unlock()

	now := s.clock.Now()
	var result domain.Booking

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		train, err := s.repo.GetTrainForUpdate(txCtx, in.TrainID)
		if err != nil {
			return err
		}

		booked, err := s.repo.SumBookedSeats(txCtx, in.TrainID)
		if err != nil {
			return err
		}
		if train.SeatCapacity-booked < in.Seats {
			return domain.ErrInsufficientSeats
		}

		taken, err := s.repo.ListSeatNumbers(txCtx, in.TrainID)
		if err != nil {
			return err
		}

		booking := domain.Booking{
			ID:          uuid.NewString(),
			TrainID:     in.TrainID,
			UserID:      in.UserID,
			NoOfSeats:   in.Seats,
			SeatNumbers: allocateSeats(taken, in.Seats),
			CreatedAt:   now,
		}
		if err := s.repo.CreateBooking(txCtx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// Availability reports capacity minus booked seats. The read is advisory:
// it may race with concurrent reservations, so callers must not treat it as
// a guarantee that a subsequent Reserve will succeed.
func (s *ReservationService) Availability(ctx context.Context, trainID string) (int, error) {
	if trainID == "" {
		return 0, domain.ErrInvalidID
	}
	train, err := s.repo.GetTrain(ctx, trainID)
	if err != nil {
		return 0, err
	}
	booked, err := s.repo.SumBookedSeats(ctx, trainID)
	if err != nil {
		return 0, err
	}
	return train.SeatCapacity - booked, nil
}

// allocateSeats picks count seat numbers, scanning upward from 1 and
// skipping any already taken. The caller guarantees enough free seats exist.
func allocateSeats(taken []int, count int) []int {
	used := make(map[int]struct{}, len(taken))
	for _, n := range taken {
		used[n] = struct{}{}
	}

	seats := make([]int, 0, count)
	for next := 1; len(seats) < count; next++ {
		if _, ok := used[next]; ok {
			continue
		}
		seats = append(seats, next)
	}
	return seats
}
