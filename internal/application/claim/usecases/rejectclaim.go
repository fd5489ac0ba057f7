package usecases

import (
	"context"
	"errors"
	"fmt"

	"stepsign/internal/domain/claim"
	vo "stepsign/internal/domain/claim/valueobjects"
	apperrors "stepsign/internal/shared/errors"
	"stepsign/internal/shared/logger"
)

type RejectClaimUseCase struct {
	claimRepo claim.Repository
	logger    logger.Interface
}

func NewRejectClaimUseCase(claimRepo claim.Repository, logger logger.Interface) *RejectClaimUseCase {
	return &RejectClaimUseCase{
		claimRepo: claimRepo,
		logger:    logger,
	}
}

func (uc *RejectClaimUseCase) Execute(ctx context.Context, claimID uint) error {
	c, err := uc.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, claim.ErrNotFound) {
			return apperrors.NewNotFoundError("claim not found")
		}
		return fmt.Errorf("failed to get claim: %w", err)
	}

	if c.Status().IsFinal() {
		return apperrors.NewConflictError(
			"claim is already "+c.Status().String(),
			"only pending or approved claims can be rejected",
		)
	}

	if err := uc.claimRepo.UpdateStatus(ctx, claimID, c.Status(), vo.ClaimStatusRejected, nil); err != nil {
		if errors.Is(err, claim.ErrStatusConflict) {
			return apperrors.NewConflictError("claim was transitioned by another request")
		}
		return fmt.Errorf("failed to reject claim: %w", err)
	}

	uc.logger.Infow("claim rejected", "claim_id", claimID, "wallet", c.UserWallet())

	return nil
}
