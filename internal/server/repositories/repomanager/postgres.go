package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/smartirrigation/internal/server/migrations"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/proposals"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/users"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/waterusage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories sharing one
// connection pool.
type PostgresRepositoryManager struct {
	db         *sql.DB
	users      *users.PostgresRepository
	proposals  *proposals.PostgresRepository
	waterUsage *waterusage.PostgresRepository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewPostgresRepositoryManager opens dsn with the pgx driver, pings it and
// applies the embedded migrations.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	m := newPostgresRepositoryManager(db)
	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres migrations: %w", err)
	}

	return m, nil
}

func newPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		db:         db,
		users:      users.NewPostgresRepository(db),
		proposals:  proposals.NewPostgresRepository(db),
		waterUsage: waterusage.NewPostgresRepository(db),
	}
}

// RunMigrations sets up goose with the embedded migrations and runs them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Users() users.Repository           { return m.users }
func (m *PostgresRepositoryManager) Proposals() proposals.Repository   { return m.proposals }
func (m *PostgresRepositoryManager) WaterUsage() waterusage.Repository { return m.waterUsage }
func (m *PostgresRepositoryManager) Available() bool                   { return true }
func (m *PostgresRepositoryManager) Name() string                      { return "postgres" }

func (m *PostgresRepositoryManager) Close(context.Context) error {
	return m.db.Close()
}
