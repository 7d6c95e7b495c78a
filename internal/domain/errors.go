package domain

import "errors"

var (
	ErrTrainNotFound   = errors.New("train not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrInvalidSeatCount  = errors.New("invalid seat count")
	ErrInsufficientSeats = errors.New("not enough seats")

	ErrTrainNameRequired      = errors.New("train name required")
	ErrRouteRequired          = errors.New("source and destination required")
	ErrInvalidCapacity        = errors.New("invalid seat capacity")
	ErrInvalidArrivalTime     = errors.New("invalid arrival time")
	ErrCapacityBelowOccupancy = errors.New("seat capacity below booked seats")

	ErrUsernameRequired   = errors.New("username required")
	ErrPasswordRequired   = errors.New("password required")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidID = errors.New("invalid id")
)
