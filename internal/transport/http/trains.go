package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Subby575/irctc/internal/app"
	"github.com/Subby575/irctc/internal/domain"
)

// TrainAdminService is the minimal interface needed for admin train endpoints.
type TrainAdminService interface {
	CreateTrain(ctx context.Context, in app.CreateTrainInput) (domain.Train, error)
	UpdateSeatCapacity(ctx context.Context, trainID string, capacity int) (domain.Train, error)
	DeleteTrain(ctx context.Context, trainID string) error
}

// AvailabilityLister is the minimal interface needed for the availability listing.
type AvailabilityLister interface {
	ListAvailability(ctx context.Context, source, destination string) ([]domain.TrainAvailability, error)
}

// HandleCreateTrain returns an HTTP handler for adding trains.
func HandleCreateTrain(svc TrainAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTrainRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		train, err := svc.CreateTrain(r.Context(), app.CreateTrainInput{
			Name:               req.Name,
			Source:             req.Source,
			Destination:        req.Destination,
			SeatCapacity:       req.SeatCapacity,
			ArrivalSource:      req.ArrivalSource,
			ArrivalDestination: req.ArrivalDestination,
		})
		if err != nil {
			switch err {
			case domain.ErrTrainNameRequired:
				writeError(w, http.StatusBadRequest, codeTrainNameRequired, err.Error())
			case domain.ErrRouteRequired:
				writeError(w, http.StatusBadRequest, codeRouteRequired, err.Error())
			case domain.ErrInvalidCapacity:
				writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
			case domain.ErrInvalidArrivalTime:
				writeError(w, http.StatusBadRequest, codeInvalidArrivalTime, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, trainFromDomain(train))
	}
}

// HandleUpdateSeats returns an HTTP handler for changing a train's capacity.
func HandleUpdateSeats(svc TrainAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainID := mux.Vars(r)["trainID"]

		var req updateSeatsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		train, err := svc.UpdateSeatCapacity(r.Context(), trainID, req.SeatCapacity)
		if err != nil {
			switch err {
			case domain.ErrInvalidCapacity:
				writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrTrainNotFound:
				writeError(w, http.StatusNotFound, codeTrainNotFound, err.Error())
			case domain.ErrCapacityBelowOccupancy:
				writeError(w, http.StatusConflict, codeCapacityBelowOccupancy, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, trainFromDomain(train))
	}
}

// HandleDeleteTrain returns an HTTP handler for removing a train and its
// bookings.
func HandleDeleteTrain(svc TrainAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainID := mux.Vars(r)["trainID"]

		if err := svc.DeleteTrain(r.Context(), trainID); err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrTrainNotFound:
				writeError(w, http.StatusNotFound, codeTrainNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, deleteTrainResponse{Message: "train deleted"})
	}
}

// HandleAvailability returns an HTTP handler listing trains on a route with
// their free seat counts.
func HandleAvailability(svc AvailabilityLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source")
		destination := r.URL.Query().Get("destination")

		list, err := svc.ListAvailability(r.Context(), source, destination)
		if err != nil {
			switch err {
			case domain.ErrRouteRequired:
				writeError(w, http.StatusBadRequest, codeRouteRequired, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := make([]availabilityResponse, 0, len(list))
		for _, ta := range list {
			resp = append(resp, availabilityResponse{
				TrainID:            ta.Train.ID,
				TrainName:          ta.Train.Name,
				Source:             ta.Train.Source,
				Destination:        ta.Train.Destination,
				SeatCapacity:       ta.Train.SeatCapacity,
				AvailableSeats:     ta.AvailableSeats,
				ArrivalSource:      ta.Train.ArrivalSource,
				ArrivalDestination: ta.Train.ArrivalDestination,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type createTrainRequest struct {
	Name               string `json:"train_name"`
	Source             string `json:"source"`
	Destination        string `json:"destination"`
	SeatCapacity       int    `json:"seat_capacity"`
	ArrivalSource      string `json:"arrival_time_at_source"`
	ArrivalDestination string `json:"arrival_time_at_destination"`
}

type updateSeatsRequest struct {
	SeatCapacity int `json:"seat_capacity"`
}

type deleteTrainResponse struct {
	Message string `json:"message"`
}

type trainResponse struct {
	ID                 string `json:"train_id"`
	Name               string `json:"train_name"`
	Source             string `json:"source"`
	Destination        string `json:"destination"`
	SeatCapacity       int    `json:"seat_capacity"`
	ArrivalSource      string `json:"arrival_time_at_source"`
	ArrivalDestination string `json:"arrival_time_at_destination"`
}

type availabilityResponse struct {
	TrainID            string `json:"train_id"`
	TrainName          string `json:"train_name"`
	Source             string `json:"source"`
	Destination        string `json:"destination"`
	SeatCapacity       int    `json:"seat_capacity"`
	AvailableSeats     int    `json:"available_seats"`
	ArrivalSource      string `json:"arrival_time_at_source"`
	ArrivalDestination string `json:"arrival_time_at_destination"`
}

func trainFromDomain(t domain.Train) trainResponse {
	return trainResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Source:             t.Source,
		Destination:        t.Destination,
		SeatCapacity:       t.SeatCapacity,
		ArrivalSource:      t.ArrivalSource,
		ArrivalDestination: t.ArrivalDestination,
	}
}
