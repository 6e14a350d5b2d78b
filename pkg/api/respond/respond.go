// Package respond writes JSON responses and maps domain errors onto HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"alight_calculator/pkg/core/calculator"
	"alight_calculator/pkg/core/narrative"
	"alight_calculator/pkg/core/store"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error message.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}

// Err maps err to a status and a client-safe message.
func Err(w http.ResponseWriter, err error) {
	status, body := Classify(err)
	JSON(w, status, body)
}

// Classify returns the status and body Err would write for err.
func Classify(err error) (int, ErrorBody) {
	var verr *calculator.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorBody{Error: verr.Error(), Field: verr.Field}
	case errors.Is(err, calculator.ErrUnknownCalculator):
		return http.StatusNotFound, ErrorBody{Error: err.Error()}
	case errors.Is(err, calculator.ErrNoScenarios), errors.Is(err, calculator.ErrInvalidInput):
		return http.StatusBadRequest, ErrorBody{Error: err.Error()}
	case errors.Is(err, store.ErrDealNotFound):
		return http.StatusNotFound, ErrorBody{Error: err.Error()}
	case errors.Is(err, narrative.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorBody{Error: "Rate limit exceeded. Try again shortly."}
	case errors.Is(err, narrative.ErrCreditsExhausted):
		return http.StatusPaymentRequired, ErrorBody{Error: "AI credits exhausted."}
	case errors.Is(err, narrative.ErrUnavailable):
		return http.StatusInternalServerError, ErrorBody{Error: "AI analysis unavailable"}
	}
	return http.StatusInternalServerError, ErrorBody{Error: "internal error"}
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
