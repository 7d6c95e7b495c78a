package domain

import "time"

// Train is a vehicle with a fixed number of uniquely numbered seats.
// SeatCapacity is immutable from the reservation core's point of view;
// admin updates go through the train service, which refuses to shrink
// capacity below current occupancy.
type Train struct {
	ID                 string
	Name               string
	Source             string
	Destination        string
	SeatCapacity       int
	ArrivalSource      string
	ArrivalDestination string
	CreatedAt          time.Time
}

// TrainAvailability pairs a train with its advisory free-seat count.
type TrainAvailability struct {
	Train          Train
	AvailableSeats int
}
