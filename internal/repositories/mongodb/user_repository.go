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

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user document keyed by the auth UID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID finds a user by UID
func (r *UserRepository) FindByID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	filter := bson.M{"_id": uid}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": email}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// SetDisplayName patches displayName on an existing user document.
// This is deliberately an update, not an upsert: the account must have been
// created by the signup flow first.
func (r *UserRepository) SetDisplayName(ctx context.Context, uid, displayName string) error {
	filter := bson.M{"_id": uid}
	update := bson.M{"$set": bson.M{
		"displayName": displayName,
		"updatedAt":   time.Now(),
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

// CreditPoints upserts the wallet subset of the user document. The points
// increment is applied server-side so concurrent credits never lose updates,
// and the document is created when the wallet does not pre-exist.
func (r *UserRepository) CreditPoints(ctx context.Context, uid string, points int, now time.Time) error {
	filter := bson.M{"_id": uid}
	update := bson.M{
		"$inc": bson.M{"points": points},
		"$set": bson.M{"updatedAt": now},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}
