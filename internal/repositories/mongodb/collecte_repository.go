package mongodb

import (
	"context"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure CollecteRepository implements the interface
var _ repositories.CollecteRepository = (*CollecteRepository)(nil)

// CollecteRepository handles MongoDB operations for Collecte
type CollecteRepository struct {
	collection *mongo.Collection
}

// NewCollecteRepository creates a new CollecteRepository
func NewCollecteRepository(db *mongo.Database) *CollecteRepository {
	return &CollecteRepository{
		collection: db.Collection("collectes"),
	}
}

// Create inserts a new collection event
func (r *CollecteRepository) Create(ctx context.Context, collecte *models.Collecte) error {
	collecte.ID = primitive.NewObjectID()
	collecte.CreatedAt = time.Now()
	collecte.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, collecte)
	return err
}

// FindByID finds a collection event by ID
func (r *CollecteRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collecte, error) {
	var collecte models.Collecte
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&collecte)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &collecte, nil
}

// FindByAgentID finds collection events for a specific agent, newest first
func (r *CollecteRepository) FindByAgentID(ctx context.Context, agentID string, page, limit int) ([]*models.Collecte, error) {
	filter := bson.M{"agentId": agentID}
	return r.find(ctx, filter, page, limit)
}

// FindByStatus finds collection events by status, newest first
func (r *CollecteRepository) FindByStatus(ctx context.Context, status models.CollecteStatus, page, limit int) ([]*models.Collecte, error) {
	filter := bson.M{"status": status}
	return r.find(ctx, filter, page, limit)
}

func (r *CollecteRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Collecte, error) {
	var collectes []*models.Collecte
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	findOptions := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &collectes); err != nil {
		return nil, err
	}
	if collectes == nil {
		collectes = []*models.Collecte{}
	}
	return collectes, nil
}

// UpdateStatus sets the status of a collection event
func (r *CollecteRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CollecteStatus) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the total number of collection events
func (r *CollecteRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
