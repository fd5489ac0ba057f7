package claim

import (
	"fmt"
	"time"

	vo "stepsign/internal/domain/claim/valueobjects"
	"stepsign/internal/shared/biztime"
)

// Claim is a request to exchange a recorded session's steps for STEP tokens.
// The claim service exclusively owns status transitions; the repository
// re-checks them with a conditional update so concurrent transitions fail
// instead of overwriting each other.
type Claim struct {
	id         uint
	sessionID  uint
	userWallet string
	steps      int64
	reward     vo.TokenAmount
	// rewardPerStep is the rate in effect at creation time, kept so the
	// amount stays explainable if the configured rate changes later.
	rewardPerStep int64
	status        vo.ClaimStatus

	txDigest    *string
	completedAt *time.Time

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewClaim creates a pending claim for the given session snapshot.
// steps is copied from the session at claim time; the reward is
// steps × perStep in base units.
func NewClaim(sessionID uint, userWallet string, steps int64, perStep int64) (*Claim, error) {
	if sessionID == 0 {
		return nil, fmt.Errorf("session ID is required")
	}
	if userWallet == "" {
		return nil, fmt.Errorf("user wallet is required")
	}
	if steps < 0 {
		return nil, fmt.Errorf("steps must be non-negative")
	}
	if perStep <= 0 {
		return nil, fmt.Errorf("reward rate must be positive")
	}

	now := biztime.NowUTC()

	return &Claim{
		sessionID:     sessionID,
		userWallet:    userWallet,
		steps:         steps,
		reward:        vo.TokenAmountFromSteps(steps, perStep),
		rewardPerStep: perStep,
		status:        vo.ClaimStatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Approve moves a pending claim into the manual admin mint path.
func (c *Claim) Approve() error {
	return c.transitionTo(vo.ClaimStatusApproved)
}

// Complete records the mint transaction digest and finalizes the claim.
func (c *Claim) Complete(txDigest string) error {
	if txDigest == "" {
		return fmt.Errorf("transaction digest is required")
	}
	if err := c.transitionTo(vo.ClaimStatusCompleted); err != nil {
		return err
	}

	now := biztime.NowUTC()
	c.txDigest = &txDigest
	c.completedAt = &now

	return nil
}

// Reject finalizes the claim without a mint.
func (c *Claim) Reject() error {
	return c.transitionTo(vo.ClaimStatusRejected)
}

// RevertToPending is the failure-recovery rollback used when a mint fails
// after approval. It is the only transition out of approved that goes
// backwards.
func (c *Claim) RevertToPending() error {
	if c.status != vo.ClaimStatusApproved {
		return fmt.Errorf("cannot revert claim with status %s", c.status)
	}
	return c.transitionTo(vo.ClaimStatusPending)
}

func (c *Claim) transitionTo(target vo.ClaimStatus) error {
	if !c.status.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition claim from %s to %s", c.status, target)
	}

	c.status = target
	c.updatedAt = biztime.NowUTC()
	c.version++

	return nil
}

func (c *Claim) ID() uint {
	return c.id
}

func (c *Claim) SessionID() uint {
	return c.sessionID
}

func (c *Claim) UserWallet() string {
	return c.userWallet
}

func (c *Claim) Steps() int64 {
	return c.steps
}

func (c *Claim) Reward() vo.TokenAmount {
	return c.reward
}

func (c *Claim) RewardPerStep() int64 {
	return c.rewardPerStep
}

func (c *Claim) Status() vo.ClaimStatus {
	return c.status
}

func (c *Claim) TxDigest() *string {
	return c.txDigest
}

func (c *Claim) CompletedAt() *time.Time {
	return c.completedAt
}

func (c *Claim) Version() int {
	return c.version
}

func (c *Claim) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Claim) UpdatedAt() time.Time {
	return c.updatedAt
}

// SetID sets the claim ID after persistence (used by repository after Create)
func (c *Claim) SetID(id uint) {
	c.id = id
}

// ClaimReconstructParams carries persisted state for rehydration.
type ClaimReconstructParams struct {
	ID            uint
	SessionID     uint
	UserWallet    string
	Steps         int64
	Reward        vo.TokenAmount
	RewardPerStep int64
	Status        vo.ClaimStatus
	TxDigest      *string
	CompletedAt   *time.Time
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReconstructClaim rebuilds a Claim from persistence without validation.
func ReconstructClaim(p ClaimReconstructParams) *Claim {
	return &Claim{
		id:            p.ID,
		sessionID:     p.SessionID,
		userWallet:    p.UserWallet,
		steps:         p.Steps,
		reward:        p.Reward,
		rewardPerStep: p.RewardPerStep,
		status:        p.Status,
		txDigest:      p.TxDigest,
		completedAt:   p.CompletedAt,
		version:       p.Version,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}
