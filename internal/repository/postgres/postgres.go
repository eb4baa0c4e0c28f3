package postgres

import (
	"database/sql"
	"errors"

	"gamerental-backend/internal/repository"

	"github.com/lib/pq"
)

const (
	pqForeignKeyViolation pq.ErrorCode = "23503"
)

type Store struct {
	db *sql.DB
	repository.CustomerRepository
	repository.GameRepository
	repository.RentalRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		CustomerRepository: NewCustomerRepository(db),
		GameRepository:     NewGameRepository(db),
		RentalRepository:   NewRentalRepository(db),
	}
}

// DB exposes the underlying pool for health checks and jobs
func (s *Store) DB() *sql.DB {
	return s.db
}

// foreignKeyViolation returns the violated constraint name, if err is one
func foreignKeyViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
