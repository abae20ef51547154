// Package waterusage stores irrigation readings.
package waterusage

import (
	"context"

	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, w *models.WaterUsage) (*models.WaterUsage, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]models.WaterUsage, error)
}
