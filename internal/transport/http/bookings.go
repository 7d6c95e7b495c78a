package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Subby575/irctc/internal/domain"
)

// BookingReader is the minimal interface needed for booking lookups.
type BookingReader interface {
	GetBooking(ctx context.Context, bookingID, userID string) (domain.BookingDetail, error)
	ListUserBookings(ctx context.Context, userID string) ([]domain.BookingDetail, error)
}

// HandleGetBooking returns an HTTP handler for a single booking, scoped to
// its owner.
func HandleGetBooking(svc BookingReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}
		bookingID := mux.Vars(r)["bookingID"]

		detail, err := svc.GetBooking(r.Context(), bookingID, claims.UserID)
		if err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrBookingNotFound:
				writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, bookingFromDetail(detail))
	}
}

// HandleMyBookings returns an HTTP handler listing the caller's bookings.
func HandleMyBookings(svc BookingReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		details, err := svc.ListUserBookings(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]bookingResponse, 0, len(details))
		for _, d := range details {
			resp = append(resp, bookingFromDetail(d))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type bookingResponse struct {
	BookingID          string    `json:"booking_id"`
	TrainID            string    `json:"train_id"`
	TrainName          string    `json:"train_name"`
	NoOfSeats          int       `json:"no_of_seats"`
	SeatNumbers        []int     `json:"seat_numbers"`
	ArrivalSource      string    `json:"arrival_time_at_source"`
	ArrivalDestination string    `json:"arrival_time_at_destination"`
	CreatedAt          time.Time `json:"created_at"`
}

func bookingFromDetail(d domain.BookingDetail) bookingResponse {
	return bookingResponse{
		BookingID:          d.Booking.ID,
		TrainID:            d.Train.ID,
		TrainName:          d.Train.Name,
		NoOfSeats:          d.Booking.NoOfSeats,
		SeatNumbers:        d.Booking.SeatNumbers,
		ArrivalSource:      d.Train.ArrivalSource,
		ArrivalDestination: d.Train.ArrivalDestination,
		CreatedAt:          d.Booking.CreatedAt,
	}
}
