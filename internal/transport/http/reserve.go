package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Subby575/irctc/internal/app"
	"github.com/Subby575/irctc/internal/domain"
)

// SeatReserver is the minimal interface needed to book seats.
type SeatReserver interface {
	Reserve(ctx context.Context, in app.ReserveInput) (domain.Booking, error)
}

// HandleReserve returns an HTTP handler for booking seats on a train.
// It expects RequireUser to have stored token claims in the context.
func HandleReserve(svc SeatReserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}
		trainID := mux.Vars(r)["trainID"]

		var req reserveRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.NoOfSeats <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidSeatCount, domain.ErrInvalidSeatCount.Error())
			return
		}

		booking, err := svc.Reserve(r.Context(), app.ReserveInput{
			TrainID: trainID,
			UserID:  claims.UserID,
			Seats:   req.NoOfSeats,
		})
		if err != nil {
			switch err {
			case domain.ErrInvalidSeatCount:
				writeError(w, http.StatusBadRequest, codeInvalidSeatCount, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrTrainNotFound:
				writeError(w, http.StatusNotFound, codeTrainNotFound, err.Error())
			case domain.ErrInsufficientSeats:
				writeError(w, http.StatusConflict, codeInsufficientSeats, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, reserveResponse{
			BookingID:   booking.ID,
			TrainID:     booking.TrainID,
			NoOfSeats:   booking.NoOfSeats,
			SeatNumbers: booking.SeatNumbers,
			CreatedAt:   booking.CreatedAt,
		})
	}
}

type reserveRequest struct {
	NoOfSeats int `json:"no_of_seats"`
}

type reserveResponse struct {
	BookingID   string    `json:"booking_id"`
	TrainID     string    `json:"train_id"`
	NoOfSeats   int       `json:"no_of_seats"`
	SeatNumbers []int     `json:"seat_numbers"`
	CreatedAt   time.Time `json:"created_at"`
}
