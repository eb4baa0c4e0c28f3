package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamerental-backend/internal/domain"
	"gamerental-backend/internal/logger"
	"gamerental-backend/internal/repository"
)

const dateLayout = "2006-01-02"

const rentalColumns = `r.id, r."customerId", r."gameId", r."rentDate", r."daysRented", r."returnDate", r."originalPrice", r."delayFee"`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRental reads rentalColumns, followed by any extra destinations
func scanRental(row rowScanner, rt *domain.Rental, extra ...any) error {
	var (
		rentDate   time.Time
		returnDate sql.NullTime
		delayFee   sql.NullInt32
	)
	dest := append([]any{&rt.ID, &rt.CustomerID, &rt.GameID, &rentDate, &rt.DaysRented, &returnDate, &rt.OriginalPrice, &delayFee}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	rt.RentDate = rentDate.Format(dateLayout)
	if returnDate.Valid {
		s := returnDate.Time.Format(dateLayout)
		rt.ReturnDate = &s
	}
	if delayFee.Valid {
		fee := delayFee.Int32
		rt.DelayFee = &fee
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + `, c.id, c.name, g.id, g.name, g."categoryId", cat.name
	          FROM rentals r
	          JOIN customers c ON r."customerId" = c.id
	          JOIN games g ON r."gameId" = g.id
	          JOIN categories cat ON g."categoryId" = cat.id`

	var args []any
	switch {
	case filter.CustomerID != 0:
		query += ` WHERE r."customerId" = $1`
		args = append(args, filter.CustomerID)
	case filter.GameID != 0:
		query += ` WHERE r."gameId" = $1`
		args = append(args, filter.GameID)
	}
	query += ` ORDER BY r.id`

	logger.DatabaseCall(ctx, "rentals.List", query, "customerID", filter.CustomerID, "gameID", filter.GameID)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult(ctx, "rentals.List", 0, err)
		return nil, err
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		var (
			rt   domain.Rental
			cust domain.RentalCustomer
			game domain.RentalGame
		)
		if err := scanRental(rows, &rt, &cust.ID, &cust.Name, &game.ID, &game.Name, &game.CategoryID, &game.CategoryName); err != nil {
			return nil, err
		}
		rt.Customer = &cust
		rt.Game = &game
		rentals = append(rentals, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals r WHERE r.id = $1`
	logger.DatabaseCall(ctx, "rentals.GetByID", query, "rentalID", id)
	err := scanRental(r.db.QueryRowContext(ctx, query, id), rt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		logger.DatabaseResult(ctx, "rentals.GetByID", 0, err)
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock the game row so concurrent creates for the same game serialize
	// on the stock check below.
	var stockTotal int32
	err = tx.QueryRowContext(ctx, `SELECT "stockTotal" FROM games WHERE id = $1 FOR UPDATE`, rt.GameID).Scan(&stockTotal)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrGameNotFound
	}
	if err != nil {
		return fmt.Errorf("lock game: %w", err)
	}

	var outstanding int32
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM rentals WHERE "gameId" = $1 AND "returnDate" IS NULL`, rt.GameID).Scan(&outstanding)
	if err != nil {
		return fmt.Errorf("count outstanding rentals: %w", err)
	}
	if outstanding >= stockTotal {
		return domain.ErrGameOutOfStock
	}

	query := `INSERT INTO rentals ("customerId", "gameId", "rentDate", "daysRented", "returnDate", "originalPrice", "delayFee")
	          VALUES ($1, $2, $3, $4, NULL, $5, NULL) RETURNING id`
	logger.DatabaseCall(ctx, "rentals.Create", query, "customerID", rt.CustomerID, "gameID", rt.GameID)
	err = tx.QueryRowContext(ctx, query, rt.CustomerID, rt.GameID, rt.RentDate, rt.DaysRented, rt.OriginalPrice).Scan(&rt.ID)
	if constraint, ok := foreignKeyViolation(err); ok {
		if strings.Contains(strings.ToLower(constraint), "customer") {
			return domain.ErrCustomerNotFound
		}
		return domain.ErrGameNotFound
	}
	if err != nil {
		logger.DatabaseResult(ctx, "rentals.Create", 0, err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rental: %w", err)
	}
	logger.DatabaseResult(ctx, "rentals.Create", 1, nil, "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) MarkReturned(ctx context.Context, id int32, returnDate string, delayFee int32) error {
	query := `UPDATE rentals SET "returnDate" = $1, "delayFee" = $2 WHERE id = $3 AND "returnDate" IS NULL`
	logger.DatabaseCall(ctx, "rentals.MarkReturned", query, "rentalID", id)
	result, err := r.db.ExecContext(ctx, query, returnDate, delayFee, id)
	if err != nil {
		logger.DatabaseResult(ctx, "rentals.MarkReturned", 0, err)
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult(ctx, "rentals.MarkReturned", affected, nil)
	if affected == 0 {
		// Rentals can only be deleted once returned, so a missing row here
		// still means someone else closed it first.
		return domain.ErrRentalAlreadyReturned
	}
	return nil
}

func (r *rentalRepository) DeleteReturned(ctx context.Context, id int32) error {
	query := `DELETE FROM rentals WHERE id = $1 AND "returnDate" IS NOT NULL`
	logger.DatabaseCall(ctx, "rentals.DeleteReturned", query, "rentalID", id)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult(ctx, "rentals.DeleteReturned", 0, err)
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult(ctx, "rentals.DeleteReturned", affected, nil)
	if affected > 0 {
		return nil
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rentals WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrRentalNotFound
	}
	return domain.ErrRentalNotReturned
}

func (r *rentalRepository) ListOutstanding(ctx context.Context) ([]repository.OutstandingRental, error) {
	query := `SELECT ` + rentalColumns + `, g."pricePerDay"
	          FROM rentals r
	          JOIN games g ON r."gameId" = g.id
	          WHERE r."returnDate" IS NULL
	          ORDER BY r."rentDate", r.id`
	logger.DatabaseCall(ctx, "rentals.ListOutstanding", query)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult(ctx, "rentals.ListOutstanding", 0, err)
		return nil, err
	}
	defer rows.Close()

	var out []repository.OutstandingRental
	for rows.Next() {
		var o repository.OutstandingRental
		if err := scanRental(rows, &o.Rental, &o.PricePerDay); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
