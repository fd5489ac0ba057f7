package usecases

import (
	"context"
	"time"

	"stepsign/internal/domain/claim"
	vo "stepsign/internal/domain/claim/valueobjects"
	"stepsign/internal/domain/session"
)

// =====================================================================
// In-memory repositories and gateway mocks
// =====================================================================

type memSessionRepo struct {
	sessions map[uint]*session.Session
}

func newMemSessionRepo(sessions ...*session.Session) *memSessionRepo {
	r := &memSessionRepo{sessions: make(map[uint]*session.Session)}
	for _, s := range sessions {
		r.sessions[s.ID()] = s
	}
	return r
}

func (r *memSessionRepo) Create(ctx context.Context, s *session.Session) error {
	s.SetID(uint(len(r.sessions) + 1))
	r.sessions[s.ID()] = s
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id uint) (*session.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return s, nil
}

func (r *memSessionRepo) ListByDevice(ctx context.Context, deviceID string, limit int) ([]*session.Session, error) {
	var out []*session.Session
	for _, s := range r.sessions {
		if s.DeviceID() == deviceID && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

// passthroughTx stands in for the storage transaction runner.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memClaimRepo struct {
	claims map[uint]*claim.Claim
	nextID uint

	createErr error
	updateErr error
	// reloadErr makes GetByID fail once a status update has happened,
	// exercising the reload fallback after a persisted transition.
	reloadErr   error
	updateCalls int
}

func newMemClaimRepo(claims ...*claim.Claim) *memClaimRepo {
	r := &memClaimRepo{claims: make(map[uint]*claim.Claim)}
	for _, c := range claims {
		r.claims[c.ID()] = c
		if c.ID() > r.nextID {
			r.nextID = c.ID()
		}
	}
	return r
}

func (r *memClaimRepo) CreateWithDailyLimit(ctx context.Context, c *claim.Claim, maxPerDay int, since time.Time) error {
	if r.createErr != nil {
		return r.createErr
	}

	count, _ := r.CountByWalletSince(ctx, c.UserWallet(), since)
	if count >= int64(maxPerDay) {
		return claim.ErrDailyLimitExceeded
	}

	r.nextID++
	c.SetID(r.nextID)
	r.claims[c.ID()] = c
	return nil
}

// GetByID hands out a rehydrated copy, matching a real repository mapping a
// fresh row on every read.
func (r *memClaimRepo) GetByID(ctx context.Context, id uint) (*claim.Claim, error) {
	if r.reloadErr != nil && r.updateCalls > 0 {
		return nil, r.reloadErr
	}
	c, ok := r.claims[id]
	if !ok {
		return nil, claim.ErrNotFound
	}
	return cloneClaim(c), nil
}

func (r *memClaimRepo) ListPending(ctx context.Context) ([]*claim.Claim, error) {
	var out []*claim.Claim
	for _, c := range r.claims {
		if c.Status().IsPending() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClaimRepo) ListByWallet(ctx context.Context, wallet string) ([]*claim.Claim, error) {
	var out []*claim.Claim
	for _, c := range r.claims {
		if c.UserWallet() == wallet {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClaimRepo) CountByWalletSince(ctx context.Context, wallet string, since time.Time) (int64, error) {
	var count int64
	for _, c := range r.claims {
		if c.UserWallet() == wallet && !c.CreatedAt().Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *memClaimRepo) UpdateStatus(ctx context.Context, id uint, expected, next vo.ClaimStatus, txDigest *string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updateCalls++

	c, ok := r.claims[id]
	if !ok {
		return claim.ErrNotFound
	}
	if c.Status() != expected {
		return claim.ErrStatusConflict
	}

	switch next {
	case vo.ClaimStatusApproved:
		return c.Approve()
	case vo.ClaimStatusCompleted:
		digest := ""
		if txDigest != nil {
			digest = *txDigest
		}
		return c.Complete(digest)
	case vo.ClaimStatusRejected:
		return c.Reject()
	case vo.ClaimStatusPending:
		return c.RevertToPending()
	}
	return nil
}

type mockGateway struct {
	mintDigest string
	mintErr    error
	mintCalls  int

	execDigest string
	execErr    error

	balance    float64
	balanceErr error

	lastRecipient string
	lastAmount    float64
}

func (g *mockGateway) MintTokens(ctx context.Context, recipient string, amount float64) (string, error) {
	g.mintCalls++
	g.lastRecipient = recipient
	g.lastAmount = amount
	if g.mintErr != nil {
		return "", g.mintErr
	}
	return g.mintDigest, nil
}

func (g *mockGateway) ExecuteTransaction(ctx context.Context, signedTxBase64 string) (string, error) {
	if g.execErr != nil {
		return "", g.execErr
	}
	return g.execDigest, nil
}

func (g *mockGateway) GetBalance(ctx context.Context, owner string) (float64, error) {
	if g.balanceErr != nil {
		return 0, g.balanceErr
	}
	return g.balance, nil
}

type mockNotifier struct {
	calls   int
	lastMsg string
}

func (n *mockNotifier) MintFailed(ctx context.Context, c *claim.Claim, reason string) error {
	n.calls++
	n.lastMsg = reason
	return nil
}

// =====================================================================
// Fixtures
// =====================================================================

const testWallet = "0x7b8e0864967427679b4e129f79dc332a885c6087ec9e187b53451a9006ee15f2"

func sessionWithSteps(id uint, steps int64) *session.Session {
	s := session.ReconstructSession(session.SessionReconstructParams{
		ID:         id,
		DeviceID:   "insole-001",
		StartTime:  1700000000,
		EndTime:    1700003600,
		TotalSteps: steps,
		CreatedAt:  time.Now().UTC(),
	})
	return s
}

func cloneClaim(c *claim.Claim) *claim.Claim {
	return claim.ReconstructClaim(claim.ClaimReconstructParams{
		ID:            c.ID(),
		SessionID:     c.SessionID(),
		UserWallet:    c.UserWallet(),
		Steps:         c.Steps(),
		Reward:        c.Reward(),
		RewardPerStep: c.RewardPerStep(),
		Status:        c.Status(),
		TxDigest:      c.TxDigest(),
		CompletedAt:   c.CompletedAt(),
		Version:       c.Version(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	})
}

func claimWithStatus(id uint, status vo.ClaimStatus) *claim.Claim {
	now := time.Now().UTC()
	return claim.ReconstructClaim(claim.ClaimReconstructParams{
		ID:            id,
		SessionID:     1,
		UserWallet:    testWallet,
		Steps:         500,
		Reward:        vo.NewTokenAmount(500_000_000),
		RewardPerStep: 1_000_000,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}
