package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"gamerental-backend/internal/domain"

	"github.com/gorilla/mux"
)

// RentalService is the subset of the service layer the handlers need.
type RentalService interface {
	ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error)
	CreateRental(ctx context.Context, customerID, gameID, daysRented int32) (*domain.Rental, error)
	ReturnRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
	DeleteRental(ctx context.Context, rentalID int32) error
}

type RentalHandler struct {
	svc RentalService
}

func NewRentalHandler(svc RentalService) *RentalHandler {
	return &RentalHandler{svc: svc}
}

// List handles GET /rentals. customerId takes priority over gameId.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.RentalFilter
	q := r.URL.Query()
	if v := q.Get("customerId"); v != "" {
		id, err := parseID(v)
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter.CustomerID = id
	} else if v := q.Get("gameId"); v != "" {
		id, err := parseID(v)
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter.GameID = id
	}

	rentals, err := h.svc.ListRentals(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(rentals)
}

// Create handles POST /rentals.
func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateRental(r.Body)
	if errors.Is(err, errSchema) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.svc.CreateRental(r.Context(), req.CustomerID, req.GameID, req.DaysRented); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Return handles POST /rentals/{id}/return.
func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.ReturnRental(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Delete handles DELETE /rentals/{id}.
func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteRental(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
