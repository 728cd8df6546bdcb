package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/P-CIV/ecocycle-sub001/internal/models"
)

func newRewardFixture() (*RewardService, *fakeTokenRepo) {
	repo := newFakeTokenRepo()
	return NewRewardService(repo, testLogger()), repo
}

func seedToken(repo *fakeTokenRepo, token string, isValid, used bool, expiresAt time.Time) {
	_ = repo.Create(context.Background(), &models.RedeemToken{
		Token:     token,
		IsValid:   isValid,
		Used:      used,
		ExpiresAt: expiresAt,
	})
}

func TestRedeemUnknownToken(t *testing.T) {
	svc, _ := newRewardFixture()

	if got := svc.RedeemToken(context.Background(), "nope"); got != RedeemNotFound {
		t.Errorf("expected RedeemNotFound, got %v", got)
	}
	if svc.ValidateAndUseToken(context.Background(), "nope") {
		t.Error("expected false for unknown token")
	}
}

func TestRedeemEmptyToken(t *testing.T) {
	svc, _ := newRewardFixture()

	if got := svc.RedeemToken(context.Background(), ""); got != RedeemNotFound {
		t.Errorf("expected RedeemNotFound, got %v", got)
	}
}

func TestRedeemUsedTokenNotMutated(t *testing.T) {
	svc, repo := newRewardFixture()
	seedToken(repo, "T1", false, true, time.Now().Add(time.Hour))

	if got := svc.RedeemToken(context.Background(), "T1"); got != RedeemNotFound {
		t.Errorf("expected RedeemNotFound, got %v", got)
	}
	doc := repo.get("T1")
	if !doc.Used || doc.IsValid {
		t.Error("used token document changed by failed redemption")
	}
}

func TestRedeemInvalidatedToken(t *testing.T) {
	svc, repo := newRewardFixture()
	seedToken(repo, "T2", false, false, time.Now().Add(time.Hour))

	if got := svc.RedeemToken(context.Background(), "T2"); got != RedeemNotFound {
		t.Errorf("expected RedeemNotFound, got %v", got)
	}
	if doc := repo.get("T2"); doc.Used {
		t.Error("invalidated token was marked used")
	}
}

// An expired-but-unused token is reported expired and left exactly as it
// was: the redemption path never consumes tokens it refuses.
func TestRedeemExpiredTokenLeftUntouched(t *testing.T) {
	svc, repo := newRewardFixture()
	seedToken(repo, "T3", true, false, time.Now().Add(-time.Minute))

	if got := svc.RedeemToken(context.Background(), "T3"); got != RedeemExpired {
		t.Errorf("expected RedeemExpired, got %v", got)
	}
	doc := repo.get("T3")
	if doc.Used || !doc.IsValid || doc.UsedAt != nil {
		t.Errorf("expired token mutated: %+v", doc)
	}
}

func TestRedeemHappyPathConsumesOnce(t *testing.T) {
	svc, repo := newRewardFixture()
	seedToken(repo, "T4", true, false, time.Now().Add(time.Hour))

	if got := svc.RedeemToken(context.Background(), "T4"); got != RedeemOK {
		t.Fatalf("expected RedeemOK, got %v", got)
	}

	doc := repo.get("T4")
	if !doc.Used || doc.IsValid {
		t.Errorf("token not terminally consumed: %+v", doc)
	}
	if doc.UsedAt == nil {
		t.Error("usedAt not stamped")
	}

	if got := svc.RedeemToken(context.Background(), "T4"); got != RedeemNotFound {
		t.Errorf("second redemption: expected RedeemNotFound, got %v", got)
	}
}

func TestConcurrentRedemptionExactlyOneSuccess(t *testing.T) {
	svc, repo := newRewardFixture()
	seedToken(repo, "T5", true, false, time.Now().Add(time.Hour))

	const callers = 16
	var wg sync.WaitGroup
	results := make([]bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.ValidateAndUseToken(context.Background(), "T5")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, ok := range results {
		if ok {
			successes++
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly one successful redemption, got %d", successes)
	}
}

// A token that expires between the eligibility read and the consume write
// is still reported expired, not merely not-found, and stays untouched.
func TestRedeemExpiryDuringConsumeClassifiedExpired(t *testing.T) {
	svc, repo := newRewardFixture()
	seedToken(repo, "T7", true, false, time.Now().Add(time.Hour))
	repo.beforeConsume = func() {
		repo.setExpiry("T7", time.Now().Add(-time.Second))
	}

	if got := svc.RedeemToken(context.Background(), "T7"); got != RedeemExpired {
		t.Errorf("expected RedeemExpired, got %v", got)
	}
	doc := repo.get("T7")
	if doc.Used || !doc.IsValid {
		t.Errorf("token mutated by refused redemption: %+v", doc)
	}
}

func TestRedeemStoreErrorFailsClosed(t *testing.T) {
	svc, repo := newRewardFixture()
	seedToken(repo, "T6", true, false, time.Now().Add(time.Hour))
	repo.err = errors.New("connection reset")

	if got := svc.RedeemToken(context.Background(), "T6"); got != RedeemUnavailable {
		t.Errorf("expected RedeemUnavailable, got %v", got)
	}
	if svc.ValidateAndUseToken(context.Background(), "T6") {
		t.Error("store error must surface as false")
	}
}
