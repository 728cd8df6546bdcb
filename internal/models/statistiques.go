package models

import (
	"time"
)

// Statistiques holds the per-agent aggregate counters kept in the
// statistiques collection, keyed by the agent UID. Created once at
// provisioning time with everything zeroed.
type Statistiques struct {
	ID                string    `bson:"_id" json:"id"`
	CollectesMois     int       `bson:"collectesMois" json:"collectesMois"`
	PointsMois        int       `bson:"pointsMois" json:"pointsMois"`
	CollectesJour     int       `bson:"collectesJour" json:"collectesJour"`
	CollectesReussies int       `bson:"collectesReussies" json:"collectesReussies"`
	CollectesTotales  int       `bson:"collectesTotales" json:"collectesTotales"`
	HistoriqueMois    []int     `bson:"historiqueMois" json:"historiqueMois"`
	HistoriquePoints  []int     `bson:"historiquePoints" json:"historiquePoints"`
	DateCreation      time.Time `bson:"dateCreation" json:"dateCreation"`
}

// NewStatistiques builds the zeroed statistics document for a new agent
func NewStatistiques(uid string, now time.Time) *Statistiques {
	return &Statistiques{
		ID:               uid,
		HistoriqueMois:   []int{},
		HistoriquePoints: []int{},
		DateCreation:     now,
	}
}
