package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/server/config"
	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/proposals"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/users"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/waterusage"
)

func testConfig() *config.Config {
	return &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour}
}

func ptr(v float64) *float64 { return &v }

// register creates an account on m and returns it.
func register(t *testing.T, m repomanager.RepositoryManager, name, email, role string) *models.User {
	t.Helper()
	res, err := NewUserService(m, testConfig()).Register(context.Background(), RegisterInput{
		Name: name, Email: email, Password: "pw", Role: role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return res.User
}

var errStore = errors.New("store down")

type failingUsers struct{}

func (failingUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errStore }
func (failingUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errStore
}
func (failingUsers) GetUserByID(context.Context, string) (*models.User, error) { return nil, errStore }
func (failingUsers) List(context.Context) ([]models.User, error)               { return nil, errStore }

type failingProposals struct{}

func (failingProposals) Create(context.Context, *models.Proposal) (*models.Proposal, error) {
	return nil, errStore
}
func (failingProposals) ListActive(context.Context) ([]models.Proposal, error) { return nil, errStore }
func (failingProposals) DeleteOwned(context.Context, string, string) error      { return errStore }

type failingWaterUsage struct{}

func (failingWaterUsage) Create(context.Context, *models.WaterUsage) (*models.WaterUsage, error) {
	return nil, errStore
}
func (failingWaterUsage) List(context.Context) ([]models.WaterUsage, error) { return nil, errStore }

// failingManager is a connected store whose every call fails.
type failingManager struct{}

func (failingManager) Users() users.Repository           { return failingUsers{} }
func (failingManager) Proposals() proposals.Repository   { return failingProposals{} }
func (failingManager) WaterUsage() waterusage.Repository { return failingWaterUsage{} }
func (failingManager) Available() bool                   { return true }
func (failingManager) Name() string                      { return "failing" }
func (failingManager) Close(context.Context) error       { return nil }
