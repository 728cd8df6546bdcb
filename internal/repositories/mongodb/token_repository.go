package mongodb

import (
	"context"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure TokenRepository implements the interface
var _ repositories.TokenRepository = (*TokenRepository)(nil)

// TokenRepository handles MongoDB operations for RedeemToken
type TokenRepository struct {
	collection *mongo.Collection
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{
		collection: db.Collection("redeemTokens"),
	}
}

// Create inserts a new redemption token
func (r *TokenRepository) Create(ctx context.Context, token *models.RedeemToken) error {
	token.ID = primitive.NewObjectID()
	token.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, token)
	return err
}

// FindEligible returns the token document that is still valid and unused,
// without checking expiry. Expiry is classified by the caller so that an
// expired-but-unused token is never mutated.
func (r *TokenRepository) FindEligible(ctx context.Context, token string) (*models.RedeemToken, error) {
	var doc models.RedeemToken
	filter := bson.M{
		"token":   token,
		"isValid": true,
		"used":    false,
	}
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &doc, nil
}

// ConsumeIfEligible flips the token to used=true, isValid=false and stamps
// usedAt in one conditional update. The filter carries used=false and the
// expiry bound, so two concurrent redemptions can never both match: the
// losing caller gets matched=false, not an error.
func (r *TokenRepository) ConsumeIfEligible(ctx context.Context, token string, now time.Time) (bool, error) {
	filter := bson.M{
		"token":     token,
		"isValid":   true,
		"used":      false,
		"expiresAt": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{
		"used":    true,
		"isValid": false,
		"usedAt":  now,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
