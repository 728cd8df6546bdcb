package services

import (
	"context"
	"errors"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// RedeemOutcome classifies the result of a token redemption attempt.
// Callers that only care about success should use ValidateAndUseToken.
type RedeemOutcome int

const (
	// RedeemOK means the token was consumed by this call.
	RedeemOK RedeemOutcome = iota
	// RedeemNotFound covers unknown, already-used and invalidated tokens
	// alike. It is also returned to the loser of a concurrent redemption.
	RedeemNotFound
	// RedeemExpired means the token exists, is unused, but expired. The
	// document is left untouched.
	RedeemExpired
	// RedeemUnavailable means the store could not be reached or errored.
	RedeemUnavailable
)

func (o RedeemOutcome) String() string {
	switch o {
	case RedeemOK:
		return "ok"
	case RedeemNotFound:
		return "not_found"
	case RedeemExpired:
		return "expired"
	case RedeemUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// RewardService handles single-use redemption tokens
type RewardService struct {
	tokenRepo repositories.TokenRepository
	log       *logrus.Logger
}

// NewRewardService creates a new RewardService
func NewRewardService(tokenRepo repositories.TokenRepository, log *logrus.Logger) *RewardService {
	return &RewardService{
		tokenRepo: tokenRepo,
		log:       log,
	}
}

// CreateToken registers a new single-use redemption token
func (s *RewardService) CreateToken(ctx context.Context, token string, expiresAt time.Time, createdBy string) (*models.RedeemToken, error) {
	doc := &models.RedeemToken{
		Token:     token,
		IsValid:   true,
		Used:      false,
		ExpiresAt: expiresAt,
		CreatedBy: createdBy,
	}
	if err := s.tokenRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// RedeemToken validates a one-time token and marks it consumed.
//
// The eligibility read and the consuming write are separate calls: the read
// classifies not-found versus expired, and the write re-checks the full
// eligibility filter (including expiry) in a single conditional update so
// that two concurrent redemptions of the same token yield exactly one
// RedeemOK. An expired token is classified before any write and is never
// mutated.
func (s *RewardService) RedeemToken(ctx context.Context, token string) RedeemOutcome {
	if token == "" {
		return RedeemNotFound
	}

	now := time.Now()

	doc, err := s.tokenRepo.FindEligible(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return RedeemNotFound
		}
		s.log.WithError(err).WithField("token", token).Error("token lookup failed")
		return RedeemUnavailable
	}

	if doc.ExpiresAt.Before(now) {
		return RedeemExpired
	}

	consumed, err := s.tokenRepo.ConsumeIfEligible(ctx, token, now)
	if err != nil {
		s.log.WithError(err).WithField("token", token).Error("token consume failed")
		return RedeemUnavailable
	}
	if !consumed {
		// The conditional write matched nothing: either another
		// redemption won between the read and the write, or the token
		// expired in that window. Re-read to tell the two apart.
		doc, err = s.tokenRepo.FindEligible(ctx, token)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return RedeemNotFound
			}
			s.log.WithError(err).WithField("token", token).Error("token re-read failed")
			return RedeemUnavailable
		}
		if doc.ExpiresAt.Before(time.Now()) {
			return RedeemExpired
		}
		return RedeemNotFound
	}

	return RedeemOK
}

// ValidateAndUseToken is the boolean-compatible adapter over RedeemToken:
// true only when this call consumed the token. All failure causes collapse
// to false (fail-closed).
func (s *RewardService) ValidateAndUseToken(ctx context.Context, token string) bool {
	return s.RedeemToken(ctx, token) == RedeemOK
}
