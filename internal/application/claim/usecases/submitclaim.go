package usecases

import (
	"context"
	"errors"
	"fmt"

	"stepsign/internal/application/claim/ledger"
	"stepsign/internal/domain/claim"
	vo "stepsign/internal/domain/claim/valueobjects"
	"stepsign/internal/domain/session"
	"stepsign/internal/shared/biztime"
	"stepsign/internal/shared/config"
	apperrors "stepsign/internal/shared/errors"
	"stepsign/internal/shared/logger"
)

// AlertNotifier tells the operator about claims stuck in pending after an
// automatic mint failure. Delivery is best-effort.
type AlertNotifier interface {
	MintFailed(ctx context.Context, c *claim.Claim, reason string) error
}

// TransactionRunner executes fn within a storage transaction carried in the
// context; repositories called with that context join it.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type SubmitClaimCommand struct {
	SessionID  uint
	UserWallet string
}

// SubmitClaimResult reports an accepted claim. When the automatic mint
// fails the claim still exists as pending and Minted is false; the failure
// is informational, not an error of the submission.
type SubmitClaimResult struct {
	Claim     *claim.Claim
	Minted    bool
	TxDigest  string
	Message   string
	MintError string
}

type SubmitClaimUseCase struct {
	sessionRepo session.Repository
	claimRepo   claim.Repository
	tx          TransactionRunner
	gateway     ledger.Gateway
	notifier    AlertNotifier
	logger      logger.Interface
	rules       config.RewardConfig
}

func NewSubmitClaimUseCase(
	sessionRepo session.Repository,
	claimRepo claim.Repository,
	tx TransactionRunner,
	gateway ledger.Gateway,
	notifier AlertNotifier,
	logger logger.Interface,
	rules config.RewardConfig,
) *SubmitClaimUseCase {
	return &SubmitClaimUseCase{
		sessionRepo: sessionRepo,
		claimRepo:   claimRepo,
		tx:          tx,
		gateway:     gateway,
		notifier:    notifier,
		logger:      logger,
		rules:       rules,
	}
}

func (uc *SubmitClaimUseCase) Execute(ctx context.Context, cmd SubmitClaimCommand) (*SubmitClaimResult, error) {
	var newClaim *claim.Claim

	// Session read and daily-cap insert run as one unit of work. The daily
	// window starts at local midnight; counting and inserting in the same
	// transaction keeps concurrent submissions from slipping under the cap.
	txErr := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		sess, err := uc.sessionRepo.GetByID(ctx, cmd.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return apperrors.NewNotFoundError("session not found")
			}
			uc.logger.Errorw("failed to get session", "error", err, "session_id", cmd.SessionID)
			return fmt.Errorf("failed to get session: %w", err)
		}

		if sess.TotalSteps() < int64(uc.rules.MinSteps) {
			return apperrors.NewValidationError(
				fmt.Sprintf("minimum %d steps required", uc.rules.MinSteps),
				fmt.Sprintf("session has %d steps", sess.TotalSteps()),
			)
		}

		c, err := claim.NewClaim(cmd.SessionID, cmd.UserWallet, sess.TotalSteps(), uc.rules.PerStep)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		dayStart := biztime.StartOfDayUTC(biztime.NowUTC())
		if err := uc.claimRepo.CreateWithDailyLimit(ctx, c, uc.rules.MaxClaimsPerDay, dayStart); err != nil {
			if errors.Is(err, claim.ErrDailyLimitExceeded) {
				return apperrors.NewRateLimitError(
					fmt.Sprintf("daily claim limit reached (%d claims per day)", uc.rules.MaxClaimsPerDay),
				)
			}
			uc.logger.Errorw("failed to create claim", "error", err, "session_id", cmd.SessionID, "wallet", cmd.UserWallet)
			return fmt.Errorf("failed to create claim: %w", err)
		}

		newClaim = c
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.logger.Infow("claim created",
		"claim_id", newClaim.ID(),
		"session_id", cmd.SessionID,
		"wallet", cmd.UserWallet,
		"steps", newClaim.Steps(),
		"reward_base_units", newClaim.Reward().BaseUnits())

	return uc.attemptAutoMint(ctx, newClaim), nil
}

// attemptAutoMint drives the freshly created claim toward completed. A mint
// failure leaves it pending for manual admin approval and never fails the
// submission itself.
func (uc *SubmitClaimUseCase) attemptAutoMint(ctx context.Context, c *claim.Claim) *SubmitClaimResult {
	displayAmount := c.Reward().Display()

	digest, err := uc.gateway.MintTokens(ctx, c.UserWallet(), displayAmount)
	if err != nil {
		uc.logger.Warnw("automatic mint failed, claim stays pending",
			"error", err, "claim_id", c.ID(), "wallet", c.UserWallet())

		uc.notifyMintFailure(ctx, c, err)

		return &SubmitClaimResult{
			Claim:     c,
			Minted:    false,
			Message:   "claim created but automatic mint failed, queued for manual approval",
			MintError: err.Error(),
		}
	}

	if err := uc.claimRepo.UpdateStatus(ctx, c.ID(), vo.ClaimStatusPending, vo.ClaimStatusCompleted, &digest); err != nil {
		// Tokens are already minted; the claim record is the source of truth
		// for the operator, so surface the store failure loudly but keep the
		// submission accepted.
		uc.logger.Errorw("mint succeeded but status update failed",
			"error", err, "claim_id", c.ID(), "tx_digest", digest)

		return &SubmitClaimResult{
			Claim:     c,
			Minted:    true,
			TxDigest:  digest,
			Message:   "tokens minted but claim status update failed, contact admin",
			MintError: err.Error(),
		}
	}

	// Mirror the persisted transition on the in-memory entity for the result.
	if err := c.Complete(digest); err != nil {
		uc.logger.Warnw("failed to mirror completion on claim entity", "error", err, "claim_id", c.ID())
	}

	uc.logger.Infow("claim auto-minted",
		"claim_id", c.ID(), "wallet", c.UserWallet(), "amount", displayAmount, "tx_digest", digest)

	return &SubmitClaimResult{
		Claim:    c,
		Minted:   true,
		TxDigest: digest,
		Message:  fmt.Sprintf("successfully minted %g STEP tokens", displayAmount),
	}
}

func (uc *SubmitClaimUseCase) notifyMintFailure(ctx context.Context, c *claim.Claim, cause error) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.MintFailed(ctx, c, cause.Error()); err != nil {
		uc.logger.Warnw("failed to send mint failure alert", "error", err, "claim_id", c.ID())
	}
}
