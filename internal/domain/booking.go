package domain

import "time"

// Booking records a successful reservation: who, how many seats, and which
// seat numbers. Immutable once written; removed only when the parent train
// is deleted (cascade).
//
// len(SeatNumbers) == NoOfSeats always holds for stored bookings; the
// bookings table carries a matching CHECK constraint.
type Booking struct {
	ID          string
	TrainID     string
	UserID      string
	NoOfSeats   int
	SeatNumbers []int
	CreatedAt   time.Time
}

// BookingDetail is the read model for booking lookups: the booking joined
// with its train.
type BookingDetail struct {
	Booking Booking
	Train   Train
}
