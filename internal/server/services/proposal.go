package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/dmitrijs2005/smartirrigation/internal/common"
	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/repomanager"
)

// ProposalInput is the create payload. Price is a pointer so that a missing
// price can be told apart from zero.
type ProposalInput struct {
	Title       string
	Description string
	Price       *float64
	TargetCrops []string
}

type ProposalService struct {
	repomanager repomanager.RepositoryManager
}

func NewProposalService(m repomanager.RepositoryManager) *ProposalService {
	return &ProposalService{repomanager: m}
}

// List returns active proposals, newest first.
func (s *ProposalService) List(ctx context.Context) ([]models.Proposal, error) {
	list, err := s.repomanager.Proposals().ListActive(ctx)
	if err != nil {
		return nil, internalError("list proposals", err)
	}
	return list, nil
}

// Create posts a proposal owned by requesterID.
func (s *ProposalService) Create(ctx context.Context, requesterID string, in ProposalInput) (*models.Proposal, error) {
	in.Title = strings.TrimSpace(in.Title)

	if err := common.RequireFields([]string{"title", "price"}, map[string]bool{
		"title": in.Title != "",
		"price": in.Price != nil,
	}); err != nil {
		return nil, err
	}
	if !nonNegative(*in.Price) {
		return nil, common.Invalid("price must be a non-negative number")
	}

	owner, err := s.repomanager.Users().GetUserByID(ctx, requesterID)
	if err != nil {
		// token issued for a user this store does not know
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, internalError("lookup proposer", err)
	}

	crops := make([]string, 0, len(in.TargetCrops))
	for _, c := range in.TargetCrops {
		if c = strings.TrimSpace(c); c != "" {
			crops = append(crops, c)
		}
	}

	p, err := s.repomanager.Proposals().Create(ctx, &models.Proposal{
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		TargetCrops: crops,
		Proposer:    models.Proposer{ID: owner.ID, Name: owner.Name, Email: owner.Email},
		Status:      models.ProposalActive,
	})
	if err != nil {
		return nil, internalError("create proposal", err)
	}

	return p, nil
}

// Delete removes proposal id if requesterID owns it. It returns
// common.ErrorNotFound or common.ErrorForbidden otherwise.
func (s *ProposalService) Delete(ctx context.Context, requesterID, id string) error {
	err := s.repomanager.Proposals().DeleteOwned(ctx, id, requesterID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorForbidden):
		return err
	default:
		return internalError("delete proposal", err)
	}
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
