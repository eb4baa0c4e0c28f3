package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gamerental-backend/internal/domain"
	"gamerental-backend/internal/logger"
	"gamerental-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name FROM customers WHERE id = $1`
	logger.DatabaseCall(ctx, "customers.GetByID", query, "customerID", id)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		logger.DatabaseResult(ctx, "customers.GetByID", 0, err)
		return nil, err
	}
	return c, nil
}
