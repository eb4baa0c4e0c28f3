package http

import (
	"errors"
	"net/http"

	"gamerental-backend/internal/domain"
	"gamerental-backend/internal/logger"
)

// statusFor maps a service error to the response status. Anything not
// recognised is a server failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRentalNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDaysRented),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrGameNotFound),
		errors.Is(err, domain.ErrGameOutOfStock),
		errors.Is(err, domain.ErrRentalAlreadyReturned),
		errors.Is(err, domain.ErrRentalNotReturned):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with a bare status code. Server failures are logged
// with the request's logger; the client never sees the cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	w.WriteHeader(status)
}
