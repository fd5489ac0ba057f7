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

type CompleteClaimCommand struct {
	ClaimID           uint
	SignedTransaction string
}

type CompleteClaimResult struct {
	Claim       *claim.Claim
	TxDigest    string
	ExplorerURL string
	Message     string
}

// CompleteClaimUseCase finalizes a claim with a user-signed transaction
// instead of the admin-key mint path.
type CompleteClaimUseCase struct {
	claimRepo claim.Repository
	gateway   ledger.Gateway
	logger    logger.Interface
	network   string
}

func NewCompleteClaimUseCase(claimRepo claim.Repository, gateway ledger.Gateway, logger logger.Interface, network string) *CompleteClaimUseCase {
	return &CompleteClaimUseCase{
		claimRepo: claimRepo,
		gateway:   gateway,
		logger:    logger,
		network:   network,
	}
}

func (uc *CompleteClaimUseCase) Execute(ctx context.Context, cmd CompleteClaimCommand) (*CompleteClaimResult, error) {
	if cmd.SignedTransaction == "" {
		return nil, apperrors.NewValidationError("missing signedTransaction")
	}

	c, err := uc.claimRepo.GetByID(ctx, cmd.ClaimID)
	if err != nil {
		if errors.Is(err, claim.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("claim not found")
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	// Completing an already-completed claim would execute the signed
	// transaction a second time.
	if c.Status().IsFinal() {
		return nil, apperrors.NewConflictError(
			"claim is already "+c.Status().String(),
			"only pending or approved claims can be completed",
		)
	}

	digest, err := uc.gateway.ExecuteTransaction(ctx, cmd.SignedTransaction)
	if err != nil {
		uc.logger.Errorw("failed to execute signed transaction",
			"error", err, "claim_id", cmd.ClaimID)
		return nil, apperrors.NewLedgerError("failed to execute transaction", err.Error()).WithCause(err)
	}

	if err := uc.claimRepo.UpdateStatus(ctx, cmd.ClaimID, c.Status(), vo.ClaimStatusCompleted, &digest); err != nil {
		if errors.Is(err, claim.ErrStatusConflict) {
			return nil, apperrors.NewConflictError("claim was transitioned by another request")
		}
		return nil, fmt.Errorf("failed to complete claim: %w", err)
	}

	uc.logger.Infow("claim completed with signed transaction",
		"claim_id", cmd.ClaimID, "tx_digest", digest)

	completed, err := uc.claimRepo.GetByID(ctx, cmd.ClaimID)
	if err != nil {
		// Mirror the persisted transition on the in-memory entity so the
		// result never reports a stale status.
		uc.logger.Warnw("failed to reload claim after completion", "error", err, "claim_id", cmd.ClaimID)
		if mirrorErr := c.Complete(digest); mirrorErr != nil {
			uc.logger.Warnw("failed to mirror completion on claim entity", "error", mirrorErr, "claim_id", cmd.ClaimID)
		}
		completed = c
	}

	return &CompleteClaimResult{
		Claim:       completed,
		TxDigest:    digest,
		ExplorerURL: fmt.Sprintf("https://suiexplorer.com/txblock/%s?network=%s", digest, uc.network),
		Message:     "claim completed",
	}, nil
}
