package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeTokenRepo mimics the conditional-update semantics of the Mongo token
// repository: ConsumeIfEligible re-checks eligibility under a lock, so at
// most one concurrent caller can flip a token.
type fakeTokenRepo struct {
	mu            sync.Mutex
	tokens        map[string]*models.RedeemToken
	err           error  // injected store failure
	beforeConsume func() // runs before the consume write, for racing tests
}

var _ repositories.TokenRepository = (*fakeTokenRepo)(nil)

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.RedeemToken)}
}

func (r *fakeTokenRepo) Create(ctx context.Context, token *models.RedeemToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *fakeTokenRepo) FindEligible(ctx context.Context, token string) (*models.RedeemToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	doc, ok := r.tokens[token]
	if !ok || !doc.IsValid || doc.Used {
		return nil, mongo.ErrNoDocuments
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeTokenRepo) ConsumeIfEligible(ctx context.Context, token string, now time.Time) (bool, error) {
	if r.beforeConsume != nil {
		r.beforeConsume()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	doc, ok := r.tokens[token]
	if !ok || !doc.IsValid || doc.Used || !doc.ExpiresAt.After(now) {
		return false, nil
	}
	doc.Used = true
	doc.IsValid = false
	doc.UsedAt = &now
	return true, nil
}

func (r *fakeTokenRepo) setExpiry(token string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.tokens[token]; ok {
		doc.ExpiresAt = expiresAt
	}
}

func (r *fakeTokenRepo) get(token string) *models.RedeemToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.tokens[token]
	if !ok {
		return nil
	}
	copied := *doc
	return &copied
}

type fakeAgentRepo struct {
	mu     sync.Mutex
	agents map[string]*models.Agent
	err    error
}

var _ repositories.AgentRepository = (*fakeAgentRepo)(nil)

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{agents: make(map[string]*models.Agent)}
}

func (r *fakeAgentRepo) Replace(ctx context.Context, agent *models.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	copied := *agent
	r.agents[agent.ID] = &copied
	return nil
}

func (r *fakeAgentRepo) FindByID(ctx context.Context, uid string) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agent, ok := r.agents[uid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *agent
	return &copied, nil
}

func (r *fakeAgentRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agents := []*models.Agent{}
	for _, agent := range r.agents {
		copied := *agent
		agents = append(agents, &copied)
	}
	return agents, nil
}

func (r *fakeAgentRepo) ApplyCollectionDelta(ctx context.Context, uid string, points int, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	agent, ok := r.agents[uid]
	if !ok {
		return mongo.ErrNoDocuments
	}
	agent.PointsTotaux += points
	agent.CollectesTotales++
	agent.DerniereActivite = now
	return nil
}

func (r *fakeAgentRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.agents)), nil
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	creditErr error
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, uid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[uid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) SetDisplayName(ctx context.Context, uid, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[uid]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.DisplayName = displayName
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) CreditPoints(ctx context.Context, uid string, points int, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.creditErr != nil {
		return r.creditErr
	}
	user, ok := r.users[uid]
	if !ok {
		// Upsert semantics: the wallet document is created when absent.
		r.users[uid] = &models.User{ID: uid, Points: points, UpdatedAt: now}
		return nil
	}
	user.Points += points
	user.UpdatedAt = now
	return nil
}

type fakeStatsRepo struct {
	mu    sync.Mutex
	stats map[string]*models.Statistiques
	err   error
}

var _ repositories.StatsRepository = (*fakeStatsRepo)(nil)

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: make(map[string]*models.Statistiques)}
}

func (r *fakeStatsRepo) Replace(ctx context.Context, stats *models.Statistiques) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	copied := *stats
	r.stats[stats.ID] = &copied
	return nil
}

func (r *fakeStatsRepo) FindByID(ctx context.Context, uid string) (*models.Statistiques, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[uid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *stats
	return &copied, nil
}

type fakeCollecteRepo struct {
	mu        sync.Mutex
	collectes map[primitive.ObjectID]*models.Collecte
}

var _ repositories.CollecteRepository = (*fakeCollecteRepo)(nil)

func newFakeCollecteRepo() *fakeCollecteRepo {
	return &fakeCollecteRepo{collectes: make(map[primitive.ObjectID]*models.Collecte)}
}

func (r *fakeCollecteRepo) Create(ctx context.Context, collecte *models.Collecte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	collecte.ID = primitive.NewObjectID()
	copied := *collecte
	r.collectes[collecte.ID] = &copied
	return nil
}

func (r *fakeCollecteRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collecte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	collecte, ok := r.collectes[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *collecte
	return &copied, nil
}

func (r *fakeCollecteRepo) FindByAgentID(ctx context.Context, agentID string, page, limit int) ([]*models.Collecte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	collectes := []*models.Collecte{}
	for _, collecte := range r.collectes {
		if collecte.AgentID == agentID {
			copied := *collecte
			collectes = append(collectes, &copied)
		}
	}
	return collectes, nil
}

func (r *fakeCollecteRepo) FindByStatus(ctx context.Context, status models.CollecteStatus, page, limit int) ([]*models.Collecte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	collectes := []*models.Collecte{}
	for _, collecte := range r.collectes {
		if collecte.Status == status {
			copied := *collecte
			collectes = append(collectes, &copied)
		}
	}
	return collectes, nil
}

func (r *fakeCollecteRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CollecteStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	collecte, ok := r.collectes[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	collecte.Status = status
	collecte.UpdatedAt = time.Now()
	return nil
}

func (r *fakeCollecteRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.collectes)), nil
}
