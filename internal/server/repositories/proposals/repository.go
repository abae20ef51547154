// Package proposals stores service offers posted to the marketplace.
package proposals

import (
	"context"

	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
)

// Repository persists proposals.
type Repository interface {
	// Create stores p. Proposer.ID must reference an existing user.
	Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error)
	// ListActive returns active proposals, newest first, with the proposer
	// resolved to its current name and email.
	ListActive(ctx context.Context) ([]models.Proposal, error)
	// DeleteOwned removes proposal id when ownerID owns it. It returns
	// common.ErrorNotFound for an unknown id and common.ErrorForbidden when
	// someone else owns it; nothing is removed in either case.
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
