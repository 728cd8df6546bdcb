package repositories

import (
	"context"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AgentRepository defines the interface for agent data operations
type AgentRepository interface {
	Replace(ctx context.Context, agent *models.Agent) error
	FindByID(ctx context.Context, uid string) (*models.Agent, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Agent, error)
	// ApplyCollectionDelta atomically adds points to pointsTotaux, bumps
	// collectesTotales by one and refreshes derniereActivite. Returns
	// mongo.ErrNoDocuments when the agent document is absent.
	ApplyCollectionDelta(ctx context.Context, uid string, points int, now time.Time) error
	Count(ctx context.Context) (int64, error)
}

// UserRepository defines the interface for user/wallet data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, uid string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// SetDisplayName patches displayName on an existing document and fails
	// with mongo.ErrNoDocuments when the document does not exist.
	SetDisplayName(ctx context.Context, uid, displayName string) error
	// CreditPoints upserts the wallet: the points field is incremented
	// server-side and the document is created when absent.
	CreditPoints(ctx context.Context, uid string, points int, now time.Time) error
}

// TokenRepository defines the interface for redemption token operations
type TokenRepository interface {
	Create(ctx context.Context, token *models.RedeemToken) error
	// FindEligible returns the token document matching the given token
	// string with isValid=true and used=false, regardless of expiry.
	FindEligible(ctx context.Context, token string) (*models.RedeemToken, error)
	// ConsumeIfEligible marks the token used in a single conditional
	// update whose filter re-checks eligibility and expiry, so at most
	// one concurrent caller can succeed. Returns false when the filter
	// matched nothing.
	ConsumeIfEligible(ctx context.Context, token string, now time.Time) (bool, error)
}

// StatsRepository defines the interface for per-agent statistics documents
type StatsRepository interface {
	Replace(ctx context.Context, stats *models.Statistiques) error
	FindByID(ctx context.Context, uid string) (*models.Statistiques, error)
}

// CollecteRepository defines the interface for collection event operations
type CollecteRepository interface {
	Create(ctx context.Context, collecte *models.Collecte) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collecte, error)
	FindByAgentID(ctx context.Context, agentID string, page, limit int) ([]*models.Collecte, error)
	FindByStatus(ctx context.Context, status models.CollecteStatus, page, limit int) ([]*models.Collecte, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CollecteStatus) error
	Count(ctx context.Context) (int64, error)
}
