package services

import (
	"context"
	"errors"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrCollecteAlreadyProcessed is returned when validating a collection that
// already left the en_attente status.
var ErrCollecteAlreadyProcessed = errors.New("collecte already processed")

// CollecteService handles collection event recording and validation
type CollecteService struct {
	collecteRepo repositories.CollecteRepository
	statsService *StatsService
}

// NewCollecteService creates a new CollecteService
func NewCollecteService(collecteRepo repositories.CollecteRepository, statsService *StatsService) *CollecteService {
	return &CollecteService{
		collecteRepo: collecteRepo,
		statsService: statsService,
	}
}

// CreateCollecte records a new collection event. Events start in en_attente
// unless the caller set a status explicitly.
func (s *CollecteService) CreateCollecte(ctx context.Context, collecte *models.Collecte) error {
	if collecte.Status == "" {
		collecte.Status = models.CollecteEnAttente
	}
	if collecte.Date.IsZero() {
		collecte.Date = time.Now()
	}
	return s.collecteRepo.Create(ctx, collecte)
}

// ProcessCollecte moves a pending collection to validee or rejetee and
// applies the resulting delta to the agent counters and wallet. Both
// outcomes count the collection; only validee credits points.
func (s *CollecteService) ProcessCollecte(ctx context.Context, id primitive.ObjectID, status models.CollecteStatus) (StatsResult, error) {
	if status != models.CollecteValidee && status != models.CollecteRejetee {
		return StatsFailed, errors.New("status must be validee or rejetee")
	}

	collecte, err := s.collecteRepo.FindByID(ctx, id)
	if err != nil {
		return StatsFailed, err
	}
	if collecte.Status != models.CollecteEnAttente {
		return StatsFailed, ErrCollecteAlreadyProcessed
	}

	if err := s.collecteRepo.UpdateStatus(ctx, id, status); err != nil {
		return StatsFailed, err
	}

	result := s.statsService.ApplyCollection(ctx, CollectionUpdate{
		AgentID: collecte.AgentID,
		Poids:   &collecte.Poids,
		Points:  collecte.Points,
		Status:  status,
		Type:    collecte.Type,
		Date:    collecte.Date,
	})
	return result, nil
}

// GetCollecteByID retrieves a collection event by ID
func (s *CollecteService) GetCollecteByID(ctx context.Context, id primitive.ObjectID) (*models.Collecte, error) {
	return s.collecteRepo.FindByID(ctx, id)
}

// GetCollectesByAgent retrieves collection events for an agent
func (s *CollecteService) GetCollectesByAgent(ctx context.Context, agentID string, page, limit int) ([]*models.Collecte, error) {
	return s.collecteRepo.FindByAgentID(ctx, agentID, page, limit)
}

// GetCollectesByStatus retrieves collection events by status
func (s *CollecteService) GetCollectesByStatus(ctx context.Context, status models.CollecteStatus, page, limit int) ([]*models.Collecte, error) {
	return s.collecteRepo.FindByStatus(ctx, status, page, limit)
}

// GetCollecteCount returns the total number of collection events
func (s *CollecteService) GetCollecteCount(ctx context.Context) (int64, error) {
	return s.collecteRepo.Count(ctx)
}
