package ports

import (
	"context"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// VoteRepository defines persistence operations for votes.
type VoteRepository interface {
	// Upsert replaces any previous ballot by the same voter on the same
	// project, enforcing one-ballot-per-resident at the storage level.
	// v is updated in place to the persisted document, so a re-cast
	// reports the original vote's ID, not a fresh one.
	Upsert(ctx context.Context, v *domain.Vote) error
	FindByVoter(ctx context.Context, projectID, voterID string) (*domain.Vote, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Vote, error)
	Tally(ctx context.Context, projectID string) (*domain.VoteTally, error)
}
