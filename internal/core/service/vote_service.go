package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

type VoteService struct {
	votes    ports.VoteRepository
	projects ports.ProjectRepository
	log      zerolog.Logger
}

func NewVoteService(votes ports.VoteRepository, projects ports.ProjectRepository, log zerolog.Logger) *VoteService {
	return &VoteService{votes: votes, projects: projects, log: log}
}

// CastVote records or replaces the voter's ballot on a project. Ballots are
// accepted only while the project sits in the voting stage.
func (s *VoteService) CastVote(ctx context.Context, in ports.CastVoteInput) (*domain.Vote, error) {
	ballot := domain.Ballot(in.Ballot)
	if !ballot.Valid() {
		return nil, domain.ErrInvalidBallot
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectVoting {
		return nil, domain.ErrVotingNotOpen
	}

	vote := &domain.Vote{
		ID:        uuid.NewString(),
		ProjectID: in.ProjectID,
		VoterID:   in.VoterID,
		Ballot:    ballot,
		CastAt:    time.Now().UTC(),
	}

	if err := s.votes.Upsert(ctx, vote); err != nil {
		s.log.Error().Err(err).Str("project_id", in.ProjectID).Msg("failed to record ballot")
		return nil, err
	}

	s.log.Info().
		Str("project_id", in.ProjectID).
		Str("ballot", string(ballot)).
		Msg("ballot recorded")

	return vote, nil
}

func (s *VoteService) GetOwnVote(ctx context.Context, projectID, voterID string) (*domain.Vote, error) {
	return s.votes.FindByVoter(ctx, projectID, voterID)
}

func (s *VoteService) GetTally(ctx context.Context, projectID string) (*domain.VoteTally, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.votes.Tally(ctx, projectID)
}
