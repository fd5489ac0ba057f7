package mappers

import (
	"fmt"

	"stepsign/internal/domain/claim"
	vo "stepsign/internal/domain/claim/valueobjects"
	"stepsign/internal/infrastructure/persistence/models"
)

func ClaimToModel(c *claim.Claim) *models.ClaimModel {
	return &models.ClaimModel{
		ID:            c.ID(),
		SessionID:     c.SessionID(),
		UserWallet:    c.UserWallet(),
		Steps:         c.Steps(),
		RewardAmount:  c.Reward().BaseUnits(),
		RewardPerStep: c.RewardPerStep(),
		Status:        c.Status().String(),
		TxDigest:      c.TxDigest(),
		CompletedAt:   c.CompletedAt(),
		Version:       c.Version(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

func ClaimToDomain(model *models.ClaimModel) (*claim.Claim, error) {
	status := vo.ClaimStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid claim status: %s", model.Status)
	}

	return claim.ReconstructClaim(claim.ClaimReconstructParams{
		ID:            model.ID,
		SessionID:     model.SessionID,
		UserWallet:    model.UserWallet,
		Steps:         model.Steps,
		Reward:        vo.NewTokenAmount(model.RewardAmount),
		RewardPerStep: model.RewardPerStep,
		Status:        status,
		TxDigest:      model.TxDigest,
		CompletedAt:   model.CompletedAt,
		Version:       model.Version,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}), nil
}
