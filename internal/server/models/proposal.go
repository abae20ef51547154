package models

import "time"

type ProposalStatus string

const (
	ProposalActive    ProposalStatus = "active"
	ProposalCompleted ProposalStatus = "completed"
	ProposalCancelled ProposalStatus = "cancelled"
)

// Proposer is the public projection of the user owning a proposal.
type Proposer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Proposal is a service offer posted by a provider or manufacturer.
// Proposer.ID is the owner and never changes after creation.
type Proposal struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	TargetCrops []string       `json:"targetCrops"`
	Proposer    Proposer       `json:"proposer"`
	Status      ProposalStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}
