package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Subby575/irctc/internal/clock"
	"github.com/Subby575/irctc/internal/domain"
)

type TrainRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateTrain(ctx context.Context, train domain.Train) error
	GetTrainForUpdate(ctx context.Context, trainID string) (domain.Train, error)
	UpdateSeatCapacity(ctx context.Context, trainID string, capacity int) error
	DeleteTrain(ctx context.Context, trainID string) error
	ListTrains(ctx context.Context, source, destination string) ([]domain.Train, error)
	SumBookedSeats(ctx context.Context, trainID string) (int, error)
}

// TrainService owns admin train management and the availability listing.
type TrainService struct {
	repo  TrainRepository
	clock clock.Clock
}

func NewTrainService(repo TrainRepository, clk clock.Clock) *TrainService {
	return &TrainService{
		repo:  repo,
		clock: clk,
	}
}

type CreateTrainInput struct {
	Name               string
	Source             string
	Destination        string
	SeatCapacity       int
	ArrivalSource      string
	ArrivalDestination string
}

func (s *TrainService) CreateTrain(ctx context.Context, in CreateTrainInput) (domain.Train, error) {
	if in.Name == "" {
		return domain.Train{}, domain.ErrTrainNameRequired
	}
	if in.Source == "" || in.Destination == "" {
		return domain.Train{}, domain.ErrRouteRequired
	}
	if in.SeatCapacity <= 0 {
		return domain.Train{}, domain.ErrInvalidCapacity
	}
	for _, at := range []string{in.ArrivalSource, in.ArrivalDestination} {
		if _, err := time.Parse("15:04", at); err != nil {
			return domain.Train{}, domain.ErrInvalidArrivalTime
		}
	}

	train := domain.Train{
		ID:                 uuid.NewString(),
		Name:               in.Name,
		Source:             in.Source,
		Destination:        in.Destination,
		SeatCapacity:       in.SeatCapacity,
		ArrivalSource:      in.ArrivalSource,
		ArrivalDestination: in.ArrivalDestination,
		CreatedAt:          s.clock.Now(),
	}

	if err := s.repo.CreateTrain(ctx, train); err != nil {
		return domain.Train{}, err
	}
	return train, nil
}

// UpdateSeatCapacity changes a train's capacity. Shrinking below the number
// of already booked seats is refused so existing bookings can never exceed
// capacity; the check runs under the same row lock the reservation path uses.
func (s *TrainService) UpdateSeatCapacity(ctx context.Context, trainID string, capacity int) (domain.Train, error) {
	if trainID == "" {
		return domain.Train{}, domain.ErrInvalidID
	}
	if capacity <= 0 {
		return domain.Train{}, domain.ErrInvalidCapacity
	}

	var result domain.Train
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		train, err := s.repo.GetTrainForUpdate(txCtx, trainID)
		if err != nil {
			return err
		}
		booked, err := s.repo.SumBookedSeats(txCtx, trainID)
		if err != nil {
			return err
		}
		if capacity < booked {
			return domain.ErrCapacityBelowOccupancy
		}
		if err := s.repo.UpdateSeatCapacity(txCtx, trainID, capacity); err != nil {
			return err
		}
		train.SeatCapacity = capacity
		result = train
		return nil
	})
	if err != nil {
		return domain.Train{}, err
	}
	return result, nil
}

// DeleteTrain removes a train; its bookings go with it (cascade).
func (s *TrainService) DeleteTrain(ctx context.Context, trainID string) error {
	if trainID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteTrain(ctx, trainID)
}

// ListAvailability returns trains on a route with their free-seat counts.
// The counts are advisory reads, consistent per train but racing benignly
// with concurrent reservations.
func (s *TrainService) ListAvailability(ctx context.Context, source, destination string) ([]domain.TrainAvailability, error) {
	if source == "" || destination == "" {
		return nil, domain.ErrRouteRequired
	}

	trains, err := s.repo.ListTrains(ctx, source, destination)
	if err != nil {
		return nil, err
	}

	out := make([]domain.TrainAvailability, 0, len(trains))
	for _, train := range trains {
		booked, err := s.repo.SumBookedSeats(ctx, train.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.TrainAvailability{
			Train:          train,
			AvailableSeats: train.SeatCapacity - booked,
		})
	}
	return out, nil
}
