package waterusage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/smartirrigation/internal/dbx"
	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, w *models.WaterUsage) (*models.WaterUsage, error) {
	query :=
		`INSERT INTO water_usage (id, field, liters_used, status, user_id)
         VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid)
		 RETURNING created_at
		 `

	created := *w
	created.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		created.ID, created.Field, created.LitersUsed, string(created.Status), created.UserID).Scan(&created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &created, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.WaterUsage, error) {
	query :=
		`SELECT id, field, liters_used, status, COALESCE(user_id::text, ''), created_at
		 FROM water_usage
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.WaterUsage, 0)
	for rows.Next() {
		var (
			w      models.WaterUsage
			status string
		)
		if err := rows.Scan(&w.ID, &w.Field, &w.LitersUsed, &status, &w.UserID, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		w.Status = models.WaterUsageStatus(status)
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
