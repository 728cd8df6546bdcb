package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollecteStatus represents the validation status of a collection event
type CollecteStatus string

const (
	CollecteValidee   CollecteStatus = "validee"
	CollecteEnAttente CollecteStatus = "en_attente"
	CollecteRejetee   CollecteStatus = "rejetee"
)

// Collecte represents a waste-collection event recorded by a field agent
type Collecte struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AgentID   string             `bson:"agentId" json:"agentId"`
	Type      string             `bson:"type,omitempty" json:"type,omitempty"` // e.g. "plastique", "verre", "organique"
	Poids     float64            `bson:"poids" json:"poids"`
	Points    int                `bson:"points" json:"points"`
	Status    CollecteStatus     `bson:"status" json:"status"`
	Zone      string             `bson:"zone,omitempty" json:"zone,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
