package models

import (
	"time"
)

// User represents a document in the users collection, keyed by the auth UID.
// Account fields are written by the signup flow; the points wallet is the
// subset mutated by the collection-reward path.
type User struct {
	ID          string    `bson:"_id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"displayName,omitempty" json:"displayName,omitempty"`
	Role        string    `bson:"role,omitempty" json:"role,omitempty"` // "user", "agent", "admin"
	Password    string    `bson:"password,omitempty" json:"-"`
	Points      int       `bson:"points" json:"points"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
