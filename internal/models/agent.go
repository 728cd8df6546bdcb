package models

import (
	"time"
)

// Objectifs holds the monthly targets assigned to an agent
type Objectifs struct {
	CollectesMois   int `bson:"collectesMois" json:"collectesMois"`
	PointsMois      int `bson:"pointsMois" json:"pointsMois"`
	TauxReussiteMin int `bson:"tauxReussiteMin" json:"tauxReussiteMin"`
}

// DefaultObjectifs returns the targets assigned to every newly provisioned agent
func DefaultObjectifs() Objectifs {
	return Objectifs{
		CollectesMois:   300,
		PointsMois:      3000,
		TauxReussiteMin: 95,
	}
}

// Agent represents a field agent document in the agents collection.
// The document is keyed by the auth UID, not an ObjectID.
type Agent struct {
	ID               string    `bson:"_id" json:"id"`
	Email            string    `bson:"email" json:"email"`
	Nom              string    `bson:"nom" json:"nom"`
	Phone            string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Zone             string    `bson:"zone,omitempty" json:"zone,omitempty"`
	PointsTotaux     int       `bson:"pointsTotaux" json:"pointsTotaux"`
	CollectesTotales int       `bson:"collectesTotales" json:"collectesTotales"`
	TauxReussite     int       `bson:"tauxReussite" json:"tauxReussite"`
	Objectifs        Objectifs `bson:"objectifs" json:"objectifs"`
	DerniereActivite time.Time `bson:"derniereActivite,omitempty" json:"derniereActivite,omitempty"`
	DateCreation     time.Time `bson:"dateCreation" json:"dateCreation"`
}

// NewAgent builds the initial agent document created at provisioning time.
// Counters start at zero and the success rate starts at 100.
func NewAgent(uid, nom, email, phone, zone string, now time.Time) *Agent {
	return &Agent{
		ID:               uid,
		Email:            email,
		Nom:              nom,
		Phone:            phone,
		Zone:             zone,
		PointsTotaux:     0,
		CollectesTotales: 0,
		TauxReussite:     100,
		Objectifs:        DefaultObjectifs(),
		DateCreation:     now,
	}
}
