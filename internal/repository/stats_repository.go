package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialhub/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats

	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM users)    AS users,
			(SELECT COUNT(*) FROM posts)    AS posts,
			(SELECT COUNT(*) FROM messages) AS messages,
			(SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public') AS tables
	`)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	return &stats, nil
}
