package app

import (
	"context"

	"github.com/Subby575/irctc/internal/domain"
)

type BookingRepository interface {
	GetBookingDetail(ctx context.Context, bookingID string) (domain.BookingDetail, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]domain.BookingDetail, error)
}

// BookingService serves read-only booking lookups scoped to their owner.
type BookingService struct {
	repo BookingRepository
}

func NewBookingService(repo BookingRepository) *BookingService {
	return &BookingService{repo: repo}
}

// GetBooking returns a booking with its train. Bookings belonging to other
// users read as not found.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID string) (domain.BookingDetail, error) {
	if bookingID == "" || userID == "" {
		return domain.BookingDetail{}, domain.ErrInvalidID
	}
	detail, err := s.repo.GetBookingDetail(ctx, bookingID)
	if err != nil {
		return domain.BookingDetail{}, err
	}
	if detail.Booking.UserID != userID {
		return domain.BookingDetail{}, domain.ErrBookingNotFound
	}
	return detail, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]domain.BookingDetail, error) {
	if userID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListBookingsByUser(ctx, userID)
}
