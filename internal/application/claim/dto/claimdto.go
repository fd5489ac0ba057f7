package dto

import (
	"time"

	"stepsign/internal/domain/claim"
)

// ClaimDTO is the transport representation of a claim. Reward amounts are
// base units (1 STEP = 1,000,000 base units).
type ClaimDTO struct {
	ID            uint       `json:"id"`
	SessionID     uint       `json:"session_id"`
	UserWallet    string     `json:"user_wallet"`
	Steps         int64      `json:"steps"`
	RewardAmount  int64      `json:"reward_amount"`
	RewardPerStep int64      `json:"reward_per_step"`
	Status        string     `json:"status"`
	TxDigest      *string    `json:"tx_digest,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func FromClaim(c *claim.Claim) *ClaimDTO {
	return &ClaimDTO{
		ID:            c.ID(),
		SessionID:     c.SessionID(),
		UserWallet:    c.UserWallet(),
		Steps:         c.Steps(),
		RewardAmount:  c.Reward().BaseUnits(),
		RewardPerStep: c.RewardPerStep(),
		Status:        c.Status().String(),
		TxDigest:      c.TxDigest(),
		CreatedAt:     c.CreatedAt(),
		CompletedAt:   c.CompletedAt(),
	}
}

func FromClaims(claims []*claim.Claim) []*ClaimDTO {
	dtos := make([]*ClaimDTO, 0, len(claims))
	for _, c := range claims {
		dtos = append(dtos, FromClaim(c))
	}
	return dtos
}
