package services

import (
	"context"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	"github.com/sirupsen/logrus"
)

// PointsPerValidatedCollecte is the fixed credit applied for every validated
// collection. The points value carried by the collection event itself is NOT
// used for the increment; only the status decides the credit. This mirrors
// the established business rule and must not be "fixed" to honor the
// caller-supplied points without a product decision.
const PointsPerValidatedCollecte = 5

// StatsResult classifies the outcome of applying a collection to the
// denormalized counters.
type StatsResult int

const (
	// StatsApplied means both the agent counters and the wallet were updated.
	StatsApplied StatsResult = iota
	// StatsPartial means the agent counters were updated but the wallet
	// credit failed. The two documents have diverged and will need
	// reconciling; the failure is logged, not propagated.
	StatsPartial
	// StatsFailed means the agent update itself failed; nothing was written
	// to the wallet.
	StatsFailed
)

// CollectionUpdate is the input for one completed collection event.
// Poids and Kg are alternate spellings of the weight; the first non-nil
// wins. Points is accepted for compatibility but ignored by the increment.
type CollectionUpdate struct {
	AgentID string
	Poids   *float64
	Kg      *float64
	Points  int
	Status  models.CollecteStatus
	Type    string
	Date    time.Time
}

// Weight returns the effective weight: Poids, then Kg, then zero.
func (u CollectionUpdate) Weight() float64 {
	if u.Poids != nil {
		return *u.Poids
	}
	if u.Kg != nil {
		return *u.Kg
	}
	return 0
}

// StatsService applies collection deltas to the agent counters and the
// user wallet
type StatsService struct {
	agentRepo repositories.AgentRepository
	userRepo  repositories.UserRepository
	log       *logrus.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(agentRepo repositories.AgentRepository, userRepo repositories.UserRepository, log *logrus.Logger) *StatsService {
	return &StatsService{
		agentRepo: agentRepo,
		userRepo:  userRepo,
		log:       log,
	}
}

// ApplyCollection credits one collection event to the agent's counters and
// mirrors the point credit into the user wallet.
//
// The agent update goes first and decides the overall result. The wallet
// upsert is best-effort: there is no cross-document transaction, so a wallet
// failure leaves the counters diverged (StatsPartial) rather than rolling
// anything back.
func (s *StatsService) ApplyCollection(ctx context.Context, data CollectionUpdate) StatsResult {
	pointsToAdd := 0
	if data.Status == models.CollecteValidee {
		pointsToAdd = PointsPerValidatedCollecte
	}

	now := time.Now()

	if err := s.agentRepo.ApplyCollectionDelta(ctx, data.AgentID, pointsToAdd, now); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"agentId": data.AgentID,
			"status":  data.Status,
		}).Error("agent stats update failed")
		return StatsFailed
	}

	s.log.WithFields(logrus.Fields{
		"agentId": data.AgentID,
		"status":  data.Status,
		"poids":   data.Weight(),
		"points":  pointsToAdd,
	}).Info("collection applied to agent stats")

	if err := s.userRepo.CreditPoints(ctx, data.AgentID, pointsToAdd, now); err != nil {
		// Swallowed on purpose: wallet consistency is eventually
		// reconciled, never a reason to fail the collection.
		s.log.WithError(err).WithField("agentId", data.AgentID).Warn("wallet credit failed after agent update")
		return StatsPartial
	}

	return StatsApplied
}

// UpdateAgentStats is the boolean-compatible adapter over ApplyCollection:
// true as long as the agent update succeeded, even when the wallet credit
// did not.
func (s *StatsService) UpdateAgentStats(ctx context.Context, data CollectionUpdate) bool {
	return s.ApplyCollection(ctx, data) != StatsFailed
}
