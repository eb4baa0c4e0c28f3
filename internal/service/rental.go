package service

import (
	"context"
	"errors"
	"fmt"

	"gamerental-backend/internal/clock"
	"gamerental-backend/internal/domain"
	"gamerental-backend/internal/logger"
	"gamerental-backend/internal/repository"
	"gamerental-backend/internal/utils"
)

// ErrInconsistentRental marks a rental whose stored data cannot be used,
// such as a reference to a game that no longer exists.
var ErrInconsistentRental = errors.New("inconsistent rental data")

type rentalService struct {
	rentalRepo   repository.RentalRepository
	customerRepo repository.CustomerRepository
	gameRepo     repository.GameRepository
	clock        clock.Clock
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	customerRepo repository.CustomerRepository,
	gameRepo repository.GameRepository,
	clk clock.Clock,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		customerRepo: customerRepo,
		gameRepo:     gameRepo,
		clock:        clk,
	}
}

func (s *rentalService) today() utils.Date {
	return utils.DateOf(s.clock.Now())
}

func (s *rentalService) ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error) {
	logger.EnterMethod(ctx, "rentalService.ListRentals", "customerID", filter.CustomerID, "gameID", filter.GameID)
	rentals, err := s.rentalRepo.List(ctx, filter)
	if err != nil {
		logger.ExitMethodWithError(ctx, "rentalService.ListRentals", err, false)
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	logger.ExitMethod(ctx, "rentalService.ListRentals", "count", len(rentals))
	return rentals, nil
}

func (s *rentalService) CreateRental(ctx context.Context, customerID, gameID, daysRented int32) (*domain.Rental, error) {
	logger.EnterMethod(ctx, "rentalService.CreateRental", "customerID", customerID, "gameID", gameID, "daysRented", daysRented)

	rt, err := s.createRental(ctx, customerID, gameID, daysRented)
	if err != nil {
		logger.ExitMethodWithError(ctx, "rentalService.CreateRental", err, IsRejection(err), "customerID", customerID, "gameID", gameID)
		return nil, err
	}

	logger.ExitMethod(ctx, "rentalService.CreateRental", "rentalID", rt.ID, "originalPrice", rt.OriginalPrice)
	return rt, nil
}

func (s *rentalService) createRental(ctx context.Context, customerID, gameID, daysRented int32) (*domain.Rental, error) {
	if daysRented < 1 {
		return nil, domain.ErrInvalidDaysRented
	}
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	price, err := utils.CalculateOriginalPrice(game.PricePerDay, daysRented)
	if err != nil {
		return nil, fmt.Errorf("price %d days of game %d: %w", daysRented, gameID, err)
	}

	rt := &domain.Rental{
		CustomerID:    customerID,
		GameID:        gameID,
		RentDate:      s.today().String(),
		DaysRented:    daysRented,
		OriginalPrice: price,
	}

	// Create re-checks stock under a lock on the game row.
	if err := s.rentalRepo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *rentalService) ReturnRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	logger.EnterMethod(ctx, "rentalService.ReturnRental", "rentalID", rentalID)

	rt, err := s.returnRental(ctx, rentalID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "rentalService.ReturnRental", err, IsRejection(err), "rentalID", rentalID)
		return nil, err
	}

	logger.ExitMethod(ctx, "rentalService.ReturnRental", "rentalID", rentalID, "delayFee", *rt.DelayFee)
	return rt, nil
}

func (s *rentalService) returnRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	if rentalID <= 0 {
		return nil, domain.ErrInvalidID
	}

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.IsReturned() {
		return nil, domain.ErrRentalAlreadyReturned
	}

	game, err := s.gameRepo.GetByID(ctx, rt.GameID)
	if errors.Is(err, domain.ErrGameNotFound) {
		return nil, fmt.Errorf("%w: rental %d references missing game %d", ErrInconsistentRental, rt.ID, rt.GameID)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %d for rental %d: %w", rt.GameID, rt.ID, err)
	}

	rentDate, err := utils.ParseDate(rt.RentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: rental %d has bad rent date %q: %w", ErrInconsistentRental, rt.ID, rt.RentDate, err)
	}

	today := s.today()
	fee, _, err := utils.CalculateDelayFee(rentDate, today, rt.DaysRented, game.PricePerDay)
	if err != nil {
		return nil, fmt.Errorf("delay fee for rental %d: %w", rt.ID, err)
	}

	returnDate := today.String()
	if err := s.rentalRepo.MarkReturned(ctx, rt.ID, returnDate, fee); err != nil {
		return nil, err
	}

	rt.ReturnDate = &returnDate
	rt.DelayFee = &fee
	return rt, nil
}

func (s *rentalService) DeleteRental(ctx context.Context, rentalID int32) error {
	logger.EnterMethod(ctx, "rentalService.DeleteRental", "rentalID", rentalID)

	if err := s.deleteRental(ctx, rentalID); err != nil {
		logger.ExitMethodWithError(ctx, "rentalService.DeleteRental", err, IsRejection(err), "rentalID", rentalID)
		return err
	}

	logger.ExitMethod(ctx, "rentalService.DeleteRental", "rentalID", rentalID)
	return nil
}

func (s *rentalService) deleteRental(ctx context.Context, rentalID int32) error {
	if rentalID <= 0 {
		return domain.ErrInvalidID
	}

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return err
	}
	if !rt.IsReturned() {
		return domain.ErrRentalNotReturned
	}
	return s.rentalRepo.DeleteReturned(ctx, rentalID)
}

func (s *rentalService) ListOverdueRentals(ctx context.Context) ([]domain.OverdueRental, error) {
	logger.EnterMethod(ctx, "rentalService.ListOverdueRentals")

	outstanding, err := s.rentalRepo.ListOutstanding(ctx)
	if err != nil {
		logger.ExitMethodWithError(ctx, "rentalService.ListOverdueRentals", err, false)
		return nil, fmt.Errorf("list outstanding rentals: %w", err)
	}

	today := s.today()
	var overdue []domain.OverdueRental
	for _, o := range outstanding {
		rentDate, err := utils.ParseDate(o.RentDate)
		if err != nil {
			logger.FromContext(ctx).Warn("Skipping rental with bad rent date", "rentalID", o.ID, "rentDate", o.RentDate)
			continue
		}
		fee, daysLate, err := utils.CalculateDelayFee(rentDate, today, o.DaysRented, o.PricePerDay)
		if err != nil {
			logger.FromContext(ctx).Warn("Skipping rental with unrepresentable fee", "rentalID", o.ID, "error", err)
			continue
		}
		if daysLate == 0 {
			continue
		}
		overdue = append(overdue, domain.OverdueRental{
			Rental:     o.Rental,
			DueDate:    utils.DueDate(rentDate, o.DaysRented).String(),
			DaysLate:   daysLate,
			AccruedFee: fee,
		})
	}

	logger.ExitMethod(ctx, "rentalService.ListOverdueRentals", "outstanding", len(outstanding), "overdue", len(overdue))
	return overdue, nil
}
