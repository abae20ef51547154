// Package repomanager selects the storage backend once at startup and vends
// the repositories bound to it.
package repomanager

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/logging"
	"github.com/dmitrijs2005/smartirrigation/internal/server/config"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/proposals"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/users"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/waterusage"
)

// RepositoryManager is the storage backend chosen for the process lifetime.
type RepositoryManager interface {
	Users() users.Repository
	Proposals() proposals.Repository
	WaterUsage() waterusage.Repository
	// Available reports whether a persistent store is connected.
	Available() bool
	// Name identifies the backend: "mongodb", "postgres" or "memory".
	Name() string
	Close(ctx context.Context) error
}

const defaultConnectTimeout = 5 * time.Second

// Connect makes a single attempt to reach cfg.StoreURI within
// cfg.StoreConnectTimeout. It never fails: when the URI is empty, unsupported
// or unreachable the in-memory manager is returned and a warning is logged.
func Connect(ctx context.Context, cfg *config.Config, logger logging.Logger) RepositoryManager {
	log := logger.With("module", "repomanager")

	if cfg.StoreURI == "" {
		log.Warn(ctx, "no store configured, using in-memory fallback")
		return NewInMemoryRepositoryManager()
	}

	timeout := cfg.StoreConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	m, err := open(connectCtx, cfg.StoreURI)
	if err != nil {
		log.Warn(ctx, "store unavailable, using in-memory fallback", "error", err)
		return NewInMemoryRepositoryManager()
	}

	log.Info(ctx, "store connected", "store", m.Name())
	return m
}

func open(ctx context.Context, uri string) (RepositoryManager, error) {
	scheme, _, ok := strings.Cut(uri, "://")
	if !ok {
		return nil, fmt.Errorf("store uri has no scheme")
	}

	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		m, err := NewMongoRepositoryManager(ctx, uri)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "postgres", "postgresql":
		m, err := NewPostgresRepositoryManager(ctx, uri)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported store scheme %q", scheme)
	}
}
