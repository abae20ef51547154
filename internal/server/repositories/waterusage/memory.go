package waterusage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/memid"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	records []models.WaterUsage
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// NewSeededMemoryRepository returns a repository holding the demo readings
// shown when no store is reachable, listed as Wheat, Rice, Corn.
func NewSeededMemoryRepository() *MemoryRepository {
	now := time.Now().UTC()
	return &MemoryRepository{records: []models.WaterUsage{
		{ID: "1", Field: "Wheat Field", LitersUsed: 1200, Status: models.WaterUsageOptimal, CreatedAt: now},
		{ID: "2", Field: "Rice Field", LitersUsed: 1800, Status: models.WaterUsageHigh, CreatedAt: now.Add(-time.Millisecond)},
		{ID: "3", Field: "Corn Field", LitersUsed: 900, Status: models.WaterUsageLow, CreatedAt: now.Add(-2 * time.Millisecond)},
	}}
}

func (r *MemoryRepository) Create(ctx context.Context, w *models.WaterUsage) (*models.WaterUsage, error) {
	created := *w
	created.ID = memid.Next()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.records = append(r.records, created)
	r.mu.Unlock()

	return &created, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.WaterUsage, error) {
	r.mu.RLock()
	result := make([]models.WaterUsage, len(r.records))
	// reversed so that equal timestamps list the later insert first
	for i, rec := range r.records {
		result[len(r.records)-1-i] = rec
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
