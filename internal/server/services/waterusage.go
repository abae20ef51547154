package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/smartirrigation/internal/common"
	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/repomanager"
)

// WaterUsageInput is the create payload. Status defaults to Optimal.
type WaterUsageInput struct {
	Field      string
	LitersUsed *float64
	Status     string
}

type WaterUsageService struct {
	repomanager repomanager.RepositoryManager
}

func NewWaterUsageService(m repomanager.RepositoryManager) *WaterUsageService {
	return &WaterUsageService{repomanager: m}
}

// List returns every reading, newest first.
func (s *WaterUsageService) List(ctx context.Context) ([]models.WaterUsage, error) {
	list, err := s.repomanager.WaterUsage().List(ctx)
	if err != nil {
		return nil, internalError("list water usage", err)
	}
	return list, nil
}

// Create records a reading attributed to requesterID. A requester unknown
// to the active store yields common.ErrorUnauthorized.
func (s *WaterUsageService) Create(ctx context.Context, requesterID string, in WaterUsageInput) (*models.WaterUsage, error) {
	in.Field = strings.TrimSpace(in.Field)

	if err := common.RequireFields([]string{"field", "litersUsed"}, map[string]bool{
		"field":      in.Field != "",
		"litersUsed": in.LitersUsed != nil,
	}); err != nil {
		return nil, err
	}
	if !nonNegative(*in.LitersUsed) {
		return nil, common.Invalid("litersUsed must be a non-negative number")
	}

	status := models.WaterUsageOptimal
	if in.Status != "" {
		status = models.WaterUsageStatus(in.Status)
		if !status.Valid() {
			return nil, common.Invalid("status must be one of Optimal, High, Low")
		}
	}

	owner, err := s.repomanager.Users().GetUserByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, internalError("lookup requester", err)
	}

	w, err := s.repomanager.WaterUsage().Create(ctx, &models.WaterUsage{
		Field:      in.Field,
		LitersUsed: *in.LitersUsed,
		Status:     status,
		UserID:     owner.ID,
	})
	if err != nil {
		return nil, internalError("create water usage", err)
	}

	return w, nil
}
