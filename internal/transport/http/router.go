package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// AuthHandlers bundles what the signup and login endpoints need.
type AuthHandlers interface {
	UserRegistrar
	UserAuthenticator
}

// TrainHandlers bundles what the train endpoints need.
type TrainHandlers interface {
	TrainAdminService
	AvailabilityLister
}

type RouterConfig struct {
	Reservations SeatReserver
	Trains       TrainHandlers
	Bookings     BookingReader
	Auth         AuthHandlers
	Tokens       TokenVerifier
	AdminKey     string
}

// NewRouter wires every endpoint. Admin train management sits behind the
// admin key header; booking endpoints require a bearer token.
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = NotFoundHandler()
	r.MethodNotAllowedHandler = MethodNotAllowedHandler()

	r.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)

	r.Handle("/signup", HandleSignup(cfg.Auth)).Methods(http.MethodPost)
	r.Handle("/login", HandleLogin(cfg.Auth)).Methods(http.MethodPost)

	r.Handle("/trains/availability", HandleAvailability(cfg.Trains)).Methods(http.MethodGet)
	r.Handle("/trains", RequireAdminKey(cfg.AdminKey, HandleCreateTrain(cfg.Trains))).Methods(http.MethodPost)
	r.Handle("/trains/{trainID}/seats", RequireAdminKey(cfg.AdminKey, HandleUpdateSeats(cfg.Trains))).Methods(http.MethodPut)
	r.Handle("/trains/{trainID}", RequireAdminKey(cfg.AdminKey, HandleDeleteTrain(cfg.Trains))).Methods(http.MethodDelete)

	r.Handle("/trains/{trainID}/book", RequireUser(cfg.Tokens, HandleReserve(cfg.Reservations))).Methods(http.MethodPost)
	r.Handle("/bookings/mine", RequireUser(cfg.Tokens, HandleMyBookings(cfg.Bookings))).Methods(http.MethodGet)
	r.Handle("/bookings/{bookingID}", RequireUser(cfg.Tokens, HandleGetBooking(cfg.Bookings))).Methods(http.MethodGet)

	return r
}

// MethodNotAllowedHandler returns a JSON 405 response.
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})
}
