package proposals

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/common"
	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/memid"
)

// MemoryRepository keeps proposals in process memory. The proposer name and
// email are captured at creation time.
type MemoryRepository struct {
	mu        sync.RWMutex
	proposals []models.Proposal
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {
	created := *p
	created.ID = memid.Next()
	created.TargetCrops = append([]string{}, p.TargetCrops...)
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.proposals = append(r.proposals, created)
	r.mu.Unlock()

	out := clone(created)
	return &out, nil
}

func (r *MemoryRepository) ListActive(ctx context.Context) ([]models.Proposal, error) {
	r.mu.RLock()
	result := make([]models.Proposal, 0, len(r.proposals))
	for _, p := range r.proposals {
		if p.Status == models.ProposalActive {
			result = append(result, clone(p))
		}
	}
	r.mu.RUnlock()

	// newest first; equal timestamps keep the later insert first
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *MemoryRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.proposals {
		if p.ID != id {
			continue
		}
		if p.Proposer.ID != ownerID {
			return common.ErrorForbidden
		}
		r.proposals = append(r.proposals[:i:i], r.proposals[i+1:]...)
		return nil
	}

	return common.ErrorNotFound
}

func clone(p models.Proposal) models.Proposal {
	p.TargetCrops = append([]string{}, p.TargetCrops...)
	return p
}
