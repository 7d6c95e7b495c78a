package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed       = "method_not_allowed"
	codeNotFound               = "not_found"
	codeInvalidRequestBody     = "invalid_request_body"
	codeInvalidID              = "invalid_id"
	codeInvalidSeatCount       = "invalid_seat_count"
	codeInsufficientSeats      = "insufficient_seats"
	codeTrainNotFound          = "train_not_found"
	codeBookingNotFound        = "booking_not_found"
	codeTrainNameRequired      = "train_name_required"
	codeRouteRequired          = "route_required"
	codeInvalidCapacity        = "invalid_capacity"
	codeInvalidArrivalTime     = "invalid_arrival_time"
	codeCapacityBelowOccupancy = "capacity_below_occupancy"
	codeUsernameRequired       = "username_required"
	codePasswordRequired       = "password_required"
	codeUsernameTaken          = "username_taken"
	codeInvalidCredentials     = "invalid_credentials"
	codeUnauthorized           = "unauthorized"
	codeForbidden              = "forbidden"
	codeInternalError          = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
