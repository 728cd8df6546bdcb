package services

import (
	"context"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	"github.com/sirupsen/logrus"
)

// ProvisionResult classifies the outcome of provisioning a new agent.
type ProvisionResult int

const (
	// ProvisionComplete means all three documents were written.
	ProvisionComplete ProvisionResult = iota
	// ProvisionPartial means the users patch succeeded but a later write
	// failed. Re-running Provision is safe: the remaining writes are full
	// replaces.
	ProvisionPartial
	// ProvisionFailed means the users patch failed; no agent or statistics
	// document was written.
	ProvisionFailed
)

// ProvisionRequest carries the data for a newly onboarded agent
type ProvisionRequest struct {
	UID   string `json:"uid" binding:"required"`
	Nom   string `json:"nom" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
	Zone  string `json:"zone,omitempty"`
}

// AgentService handles agent provisioning and reads
type AgentService struct {
	agentRepo repositories.AgentRepository
	userRepo  repositories.UserRepository
	statsRepo repositories.StatsRepository
	log       *logrus.Logger
}

// NewAgentService creates a new AgentService
func NewAgentService(agentRepo repositories.AgentRepository, userRepo repositories.UserRepository, statsRepo repositories.StatsRepository, log *logrus.Logger) *AgentService {
	return &AgentService{
		agentRepo: agentRepo,
		userRepo:  userRepo,
		statsRepo: statsRepo,
		log:       log,
	}
}

// Provision creates the document set for a newly onboarded agent:
// (1) patch users/{uid} displayName, (2) replace agents/{uid} with the
// zeroed initial record, (3) replace statistiques/{uid} with zeroed
// counters and empty histories.
//
// The users patch is deliberately an update, not an upsert: the account must
// exist from the signup flow before provisioning runs, and its failure stops
// the sequence before any other document is created. The three writes are
// not transactional; steps 2 and 3 are idempotent full replaces.
func (s *AgentService) Provision(ctx context.Context, req ProvisionRequest) ProvisionResult {
	now := time.Now()

	if err := s.userRepo.SetDisplayName(ctx, req.UID, req.Nom); err != nil {
		s.log.WithError(err).WithField("uid", req.UID).Error("agent provisioning: users patch failed")
		return ProvisionFailed
	}

	agent := models.NewAgent(req.UID, req.Nom, req.Email, req.Phone, req.Zone, now)
	if err := s.agentRepo.Replace(ctx, agent); err != nil {
		s.log.WithError(err).WithField("uid", req.UID).Error("agent provisioning: agents write failed")
		return ProvisionPartial
	}

	if err := s.statsRepo.Replace(ctx, models.NewStatistiques(req.UID, now)); err != nil {
		s.log.WithError(err).WithField("uid", req.UID).Error("agent provisioning: statistiques write failed")
		return ProvisionPartial
	}

	return ProvisionComplete
}

// InitAgentData is the boolean-compatible adapter over Provision: true only
// when all three writes succeeded.
func (s *AgentService) InitAgentData(ctx context.Context, req ProvisionRequest) bool {
	return s.Provision(ctx, req) == ProvisionComplete
}

// GetAgentByID retrieves an agent by UID
func (s *AgentService) GetAgentByID(ctx context.Context, uid string) (*models.Agent, error) {
	return s.agentRepo.FindByID(ctx, uid)
}

// GetAllAgents retrieves agents with pagination
func (s *AgentService) GetAllAgents(ctx context.Context, page, limit int) ([]*models.Agent, error) {
	return s.agentRepo.FindAll(ctx, page, limit)
}

// GetAgentStats retrieves the statistics document for an agent
func (s *AgentService) GetAgentStats(ctx context.Context, uid string) (*models.Statistiques, error) {
	return s.statsRepo.FindByID(ctx, uid)
}

// GetAgentCount returns the total number of agents
func (s *AgentService) GetAgentCount(ctx context.Context) (int64, error) {
	return s.agentRepo.Count(ctx)
}
