package usecases

import (
	"context"
	"errors"
	"fmt"

	"stepsign/internal/application/claim/ledger"
	"stepsign/internal/domain/claim"
	vo "stepsign/internal/domain/claim/valueobjects"
	apperrors "stepsign/internal/shared/errors"
	"stepsign/internal/shared/logger"
)

type ApproveClaimResult struct {
	Claim    *claim.Claim
	TxDigest string
	Message  string
}

// ApproveClaimUseCase is the manual admin mint path for claims whose
// automatic mint failed.
type ApproveClaimUseCase struct {
	claimRepo claim.Repository
	gateway   ledger.Gateway
	logger    logger.Interface
}

func NewApproveClaimUseCase(claimRepo claim.Repository, gateway ledger.Gateway, logger logger.Interface) *ApproveClaimUseCase {
	return &ApproveClaimUseCase{
		claimRepo: claimRepo,
		gateway:   gateway,
		logger:    logger,
	}
}

func (uc *ApproveClaimUseCase) Execute(ctx context.Context, claimID uint) (*ApproveClaimResult, error) {
	c, err := uc.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, claim.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("claim not found")
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	if !c.Status().IsPending() {
		return nil, apperrors.NewConflictError(
			"claim is already "+c.Status().String(),
			"only pending claims can be approved",
		)
	}

	if err := uc.claimRepo.UpdateStatus(ctx, claimID, vo.ClaimStatusPending, vo.ClaimStatusApproved, nil); err != nil {
		if errors.Is(err, claim.ErrStatusConflict) {
			return nil, apperrors.NewConflictError("claim was transitioned by another request")
		}
		return nil, fmt.Errorf("failed to approve claim: %w", err)
	}

	displayAmount := c.Reward().Display()
	digest, err := uc.gateway.MintTokens(ctx, c.UserWallet(), displayAmount)
	if err != nil {
		uc.logger.Errorw("mint failed after approval, reverting claim to pending",
			"error", err, "claim_id", claimID, "wallet", c.UserWallet())

		// Best-effort compensation: leave an operator-visible pending claim
		// rather than a stuck approved one. A compensation failure is logged
		// and swallowed.
		if revertErr := uc.claimRepo.UpdateStatus(ctx, claimID, vo.ClaimStatusApproved, vo.ClaimStatusPending, nil); revertErr != nil {
			uc.logger.Errorw("failed to revert claim to pending after mint failure",
				"error", revertErr, "claim_id", claimID)
		}

		return nil, apperrors.NewLedgerError("failed to mint tokens", err.Error()).WithCause(err)
	}

	if err := uc.claimRepo.UpdateStatus(ctx, claimID, vo.ClaimStatusApproved, vo.ClaimStatusCompleted, &digest); err != nil {
		uc.logger.Errorw("mint succeeded but completion update failed",
			"error", err, "claim_id", claimID, "tx_digest", digest)
		return nil, fmt.Errorf("failed to complete claim after mint: %w", err)
	}

	uc.logger.Infow("claim approved and minted",
		"claim_id", claimID, "wallet", c.UserWallet(), "amount", displayAmount, "tx_digest", digest)

	completed, err := uc.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		// Mirror the persisted transition on the in-memory entity so the
		// result never reports a stale pending claim.
		uc.logger.Warnw("failed to reload claim after mint", "error", err, "claim_id", claimID)
		if mirrorErr := c.Complete(digest); mirrorErr != nil {
			uc.logger.Warnw("failed to mirror completion on claim entity", "error", mirrorErr, "claim_id", claimID)
		}
		completed = c
	}

	return &ApproveClaimResult{
		Claim:    completed,
		TxDigest: digest,
		Message:  fmt.Sprintf("successfully minted %g STEP tokens", displayAmount),
	}, nil
}
