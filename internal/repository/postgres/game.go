package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gamerental-backend/internal/domain"
	"gamerental-backend/internal/logger"
	"gamerental-backend/internal/repository"
)

type gameRepository struct {
	db *sql.DB
}

func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) GetByID(ctx context.Context, id int32) (*domain.Game, error) {
	g := &domain.Game{}
	query := `SELECT id, name, "categoryId", "stockTotal", "pricePerDay" FROM games WHERE id = $1`
	logger.DatabaseCall(ctx, "games.GetByID", query, "gameID", id)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.CategoryID, &g.StockTotal, &g.PricePerDay)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		logger.DatabaseResult(ctx, "games.GetByID", 0, err)
		return nil, err
	}
	return g, nil
}
