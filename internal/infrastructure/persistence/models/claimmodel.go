package models

import (
	"time"
)

type ClaimModel struct {
	ID         uint   `gorm:"primaryKey"`
	SessionID  uint   `gorm:"index;not null"`
	UserWallet string `gorm:"index:idx_claims_wallet_created;size:66;not null"`
	Steps      int64  `gorm:"not null"`
	// Reward amounts are base units (1 token = 1e6 base units).
	RewardAmount  int64   `gorm:"not null"`
	RewardPerStep int64   `gorm:"not null"`
	Status        string  `gorm:"size:20;not null;index"`
	TxDigest      *string `gorm:"size:128"`
	CompletedAt   *time.Time
	Version       int       `gorm:"default:0"`
	CreatedAt     time.Time `gorm:"index:idx_claims_wallet_created"`
	UpdatedAt     time.Time
}

func (ClaimModel) TableName() string {
	return "claims"
}
