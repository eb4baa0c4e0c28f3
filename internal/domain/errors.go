package domain

import "errors"

var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrGameNotFound          = errors.New("game not found")
	ErrGameOutOfStock        = errors.New("game out of stock")
	ErrRentalNotFound        = errors.New("rental not found")
	ErrRentalAlreadyReturned = errors.New("rental already returned")
	ErrRentalNotReturned     = errors.New("rental not returned yet")
	ErrInvalidDaysRented     = errors.New("days rented must be at least 1")
	ErrInvalidID             = errors.New("invalid id")
	ErrAmountOutOfRange      = errors.New("amount out of range")
)
