package mongodb

import (
	"context"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure AgentRepository implements the interface
var _ repositories.AgentRepository = (*AgentRepository)(nil)

// AgentRepository handles MongoDB operations for Agent
type AgentRepository struct {
	collection *mongo.Collection
}

// NewAgentRepository creates a new AgentRepository
func NewAgentRepository(db *mongo.Database) *AgentRepository {
	return &AgentRepository{
		collection: db.Collection("agents"),
	}
}

// Replace writes the full agent document, creating it when absent
func (r *AgentRepository) Replace(ctx context.Context, agent *models.Agent) error {
	filter := bson.M{"_id": agent.ID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, agent, opts)
	return err
}

// FindByID finds an agent by UID
func (r *AgentRepository) FindByID(ctx context.Context, uid string) (*models.Agent, error) {
	var agent models.Agent
	filter := bson.M{"_id": uid}
	err := r.collection.FindOne(ctx, filter).Decode(&agent)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &agent, nil
}

// FindAll retrieves agents with pagination
func (r *AgentRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Agent, error) {
	var agents []*models.Agent
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	findOptions := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "dateCreation", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &agents); err != nil {
		return nil, err
	}
	if agents == nil {
		agents = []*models.Agent{}
	}
	return agents, nil
}

// ApplyCollectionDelta atomically applies one completed collection to the
// agent's denormalized counters. Both $inc fields ride in the same update
// so the counters never drift from each other.
func (r *AgentRepository) ApplyCollectionDelta(ctx context.Context, uid string, points int, now time.Time) error {
	filter := bson.M{"_id": uid}
	update := bson.M{
		"$inc": bson.M{
			"pointsTotaux":     points,
			"collectesTotales": 1,
		},
		"$set": bson.M{"derniereActivite": now},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the total number of agents
func (r *AgentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
