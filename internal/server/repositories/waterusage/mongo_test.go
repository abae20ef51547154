package waterusage

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWaterUsageDocument_Conversion(t *testing.T) {
	user := primitive.NewObjectID()
	ts := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	doc := toDocument(&models.WaterUsage{Field: "East", LitersUsed: 75, Status: models.WaterUsageOptimal, UserID: user.Hex(), CreatedAt: ts})
	if assert.NotNil(t, doc.UserID) {
		assert.Equal(t, user, *doc.UserID)
	}
	assert.Equal(t, ts, doc.UpdatedAt)

	doc.ID = primitive.NewObjectID()
	back := doc.toModel()
	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, user.Hex(), back.UserID)
	assert.Equal(t, 75.0, back.LitersUsed)
}

func TestWaterUsageDocument_ForeignUserIDDropped(t *testing.T) {
	doc := toDocument(&models.WaterUsage{Field: "East", UserID: "1700000000000000000"})
	assert.Nil(t, doc.UserID)
	assert.Empty(t, doc.toModel().UserID)
}
