package repository

import (
	"context"

	"gamerental-backend/internal/domain"
)

type CustomerRepository interface {
	// GetByID returns domain.ErrCustomerNotFound for unknown ids.
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
}

type GameRepository interface {
	// GetByID returns domain.ErrGameNotFound for unknown ids.
	GetByID(ctx context.Context, id int32) (*domain.Game, error)
}

type RentalRepository interface {
	// List returns rentals with their customer and game summaries embedded.
	List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error)
	// GetByID returns domain.ErrRentalNotFound for unknown ids.
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// Create inserts the rental if the game still has a free copy. The stock
	// check and the insert are atomic; a full game yields domain.ErrGameOutOfStock.
	Create(ctx context.Context, rental *domain.Rental) error
	// MarkReturned closes an open rental. An already closed rental yields
	// domain.ErrRentalAlreadyReturned.
	MarkReturned(ctx context.Context, id int32, returnDate string, delayFee int32) error
	// DeleteReturned removes a closed rental. Missing rows yield
	// domain.ErrRentalNotFound.
	DeleteReturned(ctx context.Context, id int32) error
	// ListOutstanding returns every rental without a return date, with the
	// game's daily price.
	ListOutstanding(ctx context.Context) ([]OutstandingRental, error)
}

// OutstandingRental pairs an open rental with the price used to charge it late.
type OutstandingRental struct {
	domain.Rental
	PricePerDay int32
}
