package service

import (
	"context"
	"errors"

	"gamerental-backend/internal/domain"
)

type RentalService interface {
	ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error)
	CreateRental(ctx context.Context, customerID, gameID, daysRented int32) (*domain.Rental, error)
	ReturnRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
	DeleteRental(ctx context.Context, rentalID int32) error
	ListOverdueRentals(ctx context.Context) ([]domain.OverdueRental, error)
}

// IsRejection reports whether err is an expected business-rule or lookup
// failure rather than an infrastructure error.
func IsRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var rejections = []error{
	domain.ErrCustomerNotFound,
	domain.ErrGameNotFound,
	domain.ErrGameOutOfStock,
	domain.ErrRentalNotFound,
	domain.ErrRentalAlreadyReturned,
	domain.ErrRentalNotReturned,
	domain.ErrInvalidDaysRented,
	domain.ErrInvalidID,
}
