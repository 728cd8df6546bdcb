package mongodb

import (
	"context"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure StatsRepository implements the interface
var _ repositories.StatsRepository = (*StatsRepository)(nil)

// StatsRepository handles MongoDB operations for Statistiques
type StatsRepository struct {
	collection *mongo.Collection
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		collection: db.Collection("statistiques"),
	}
}

// Replace writes the full statistics document, creating it when absent
func (r *StatsRepository) Replace(ctx context.Context, stats *models.Statistiques) error {
	filter := bson.M{"_id": stats.ID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, stats, opts)
	return err
}

// FindByID finds a statistics document by agent UID
func (r *StatsRepository) FindByID(ctx context.Context, uid string) (*models.Statistiques, error) {
	var stats models.Statistiques
	filter := bson.M{"_id": uid}
	err := r.collection.FindOne(ctx, filter).Decode(&stats)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &stats, nil
}
