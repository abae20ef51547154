package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	u := User{
		ID:           "1",
		Name:         "Ann",
		Email:        "ann@farm.test",
		PasswordHash: "$2a$10$secret",
		Role:         RoleFarmer,
		CreatedAt:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(b), "secret")
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "location", "empty optional fields are omitted")
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleFarmer.Valid())
	assert.True(t, RoleProvider.Valid())
	assert.True(t, RoleManufacturer.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestWaterUsageStatus_Valid(t *testing.T) {
	assert.True(t, WaterUsageOptimal.Valid())
	assert.True(t, WaterUsageHigh.Valid())
	assert.True(t, WaterUsageLow.Valid())
	assert.False(t, WaterUsageStatus("optimal").Valid(), "statuses are case-sensitive")
}
