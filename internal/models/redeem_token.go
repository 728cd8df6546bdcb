package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedeemToken represents a single-use reward redemption token.
// A token may be consumed at most once: used=true and isValid=false are
// always written together in a single document update.
type RedeemToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Token     string             `bson:"token" json:"token"`
	IsValid   bool               `bson:"isValid" json:"isValid"`
	Used      bool               `bson:"used" json:"used"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	UsedAt    *time.Time         `bson:"usedAt,omitempty" json:"usedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	CreatedBy string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
}
