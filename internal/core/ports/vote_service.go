package ports

import (
	"context"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// CastVoteInput carries one ballot from one voter.
type CastVoteInput struct {
	ProjectID string
	VoterID   string
	Ballot    string
}

// VoteService defines use-case operations for the voting feature.
type VoteService interface {
	// CastVote records or replaces the voter's ballot. Only projects in the
	// voting stage accept ballots.
	CastVote(ctx context.Context, in CastVoteInput) (*domain.Vote, error)
	GetOwnVote(ctx context.Context, projectID, voterID string) (*domain.Vote, error)
	GetTally(ctx context.Context, projectID string) (*domain.VoteTally, error)
}
