package domain

import (
	"errors"
	"time"
)

// Ballot is a resident's position on a project proposal.
type Ballot string

const (
	BallotInFavor Ballot = "in_favor"
	BallotAgainst Ballot = "against"
	BallotAbstain Ballot = "abstain"
)

var (
	ErrVoteNotFound  = errors.New("vote not found")
	ErrVotingNotOpen = errors.New("project is not open for voting")
	ErrInvalidBallot = errors.New("invalid ballot")
)

// Valid reports whether b is one of the recognised ballot values.
func (b Ballot) Valid() bool {
	switch b {
	case BallotInFavor, BallotAgainst, BallotAbstain:
		return true
	}
	return false
}

// Vote is one resident's ballot on one project. A resident holds at most
// one vote per project; casting again replaces the previous ballot.
type Vote struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ProjectID string    `json:"project_id" bson:"project_id"`
	VoterID   string    `json:"voter_id" bson:"voter_id"`
	Ballot    Ballot    `json:"ballot" bson:"ballot"`
	CastAt    time.Time `json:"cast_at" bson:"cast_at"`
}

// VoteTally aggregates ballots for one project.
type VoteTally struct {
	ProjectID string `json:"project_id"`
	InFavor   int64  `json:"in_favor"`
	Against   int64  `json:"against"`
	Abstain   int64  `json:"abstain"`
}
