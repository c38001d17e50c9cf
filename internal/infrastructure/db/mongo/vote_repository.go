package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

const collectionVotes = "votes"

type VoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{col: db.Collection(collectionVotes)}
}

// Upsert replaces any previous ballot by the same voter on the same
// project. One ballot per resident per project, enforced by the
// (project_id, voter_id) unique index. On a re-cast the stored document
// keeps its original ID; v is updated in place to match what was persisted.
func (r *VoteRepository) Upsert(ctx context.Context, v *domain.Vote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"project_id": v.ProjectID, "voter_id": v.VoterID}
	update := bson.M{"$set": bson.M{
		"ballot":  v.Ballot,
		"cast_at": v.CastAt,
	}, "$setOnInsert": bson.M{
		"_id":        v.ID,
		"project_id": v.ProjectID,
		"voter_id":   v.VoterID,
	}}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored domain.Vote
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return err
	}
	*v = stored
	return nil
}

func (r *VoteRepository) FindByVoter(ctx context.Context, projectID, voterID string) (*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vote
	err := r.col.FindOne(ctx, bson.M{"project_id": projectID, "voter_id": voterID}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VoteRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var votes []*domain.Vote
	if err := cur.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// Tally aggregates ballots for one project server-side.
func (r *VoteRepository) Tally(ctx context.Context, projectID string) (*domain.VoteTally, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"project_id": projectID}}},
		{{Key: "$group", Value: bson.M{"_id": "$ballot", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Ballot string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	tally := &domain.VoteTally{ProjectID: projectID}
	for _, row := range rows {
		switch domain.Ballot(row.Ballot) {
		case domain.BallotInFavor:
			tally.InFavor = row.Count
		case domain.BallotAgainst:
			tally.Against = row.Count
		case domain.BallotAbstain:
			tally.Abstain = row.Count
		}
	}
	return tally, nil
}

// EnsureIndexes creates the one-ballot-per-voter unique index.
func (r *VoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "voter_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
