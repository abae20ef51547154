package repomanager

import (
	"context"

	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/proposals"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/users"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/waterusage"
)

// InMemoryRepositoryManager is the fallback store. Its collections live for
// the process lifetime and start with the demo water-usage readings.
type InMemoryRepositoryManager struct {
	users      *users.MemoryRepository
	proposals  *proposals.MemoryRepository
	waterUsage *waterusage.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:      users.NewMemoryRepository(),
		proposals:  proposals.NewMemoryRepository(),
		waterUsage: waterusage.NewSeededMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository           { return m.users }
func (m *InMemoryRepositoryManager) Proposals() proposals.Repository   { return m.proposals }
func (m *InMemoryRepositoryManager) WaterUsage() waterusage.Repository { return m.waterUsage }
func (m *InMemoryRepositoryManager) Available() bool                   { return false }
func (m *InMemoryRepositoryManager) Name() string                      { return "memory" }
func (m *InMemoryRepositoryManager) Close(context.Context) error       { return nil }
