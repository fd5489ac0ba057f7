package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stepsign/internal/domain/claim"
	vo "stepsign/internal/domain/claim/valueobjects"
	"stepsign/internal/infrastructure/persistence/mappers"
	"stepsign/internal/infrastructure/persistence/models"
	"stepsign/internal/shared/db"
)

type ClaimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// CreateWithDailyLimit counts the wallet's claims since the window start and
// inserts the new claim in one transaction, so two concurrent submissions
// cannot both pass the limit check.
func (r *ClaimRepository) CreateWithDailyLimit(ctx context.Context, c *claim.Claim, maxPerDay int, since time.Time) error {
	model := mappers.ClaimToModel(c)

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ClaimModel{}).
			Where("user_wallet = ? AND created_at >= ?", model.UserWallet, since).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count claims: %w", err)
		}

		if count >= int64(maxPerDay) {
			return claim.ErrDailyLimitExceeded
		}

		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create claim: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Write back the auto-generated ID to the domain object
	c.SetID(model.ID)

	return nil
}

func (r *ClaimRepository) GetByID(ctx context.Context, id uint) (*claim.Claim, error) {
	var model models.ClaimModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claim.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	return mappers.ClaimToDomain(&model)
}

func (r *ClaimRepository) ListPending(ctx context.Context) ([]*claim.Claim, error) {
	var claimModels []models.ClaimModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ?", vo.ClaimStatusPending.String()).
		Order("created_at ASC").
		Find(&claimModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending claims: %w", err)
	}

	return claimsToDomain(claimModels)
}

func (r *ClaimRepository) ListByWallet(ctx context.Context, wallet string) ([]*claim.Claim, error) {
	var claimModels []models.ClaimModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_wallet = ?", wallet).
		Order("created_at DESC").
		Find(&claimModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list claims by wallet: %w", err)
	}

	return claimsToDomain(claimModels)
}

func (r *ClaimRepository) CountByWalletSince(ctx context.Context, wallet string, since time.Time) (int64, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ClaimModel{}).
		Where("user_wallet = ? AND created_at >= ?", wallet, since).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count claims: %w", err)
	}

	return count, nil
}

// UpdateStatus transitions a claim only if it still holds the expected
// status. A zero RowsAffected means another request won the race.
func (r *ClaimRepository) UpdateStatus(ctx context.Context, id uint, expected, next vo.ClaimStatus, txDigest *string) error {
	updates := map[string]interface{}{
		"status":     next.String(),
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now().UTC(),
	}
	if txDigest != nil {
		updates["tx_digest"] = *txDigest
	}
	if next == vo.ClaimStatusCompleted {
		now := time.Now().UTC()
		updates["completed_at"] = &now
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ClaimModel{}).
		Where("id = ? AND status = ?", id, expected.String()).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update claim status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.GetTxFromContext(ctx, r.db).
			Model(&models.ClaimModel{}).
			Where("id = ?", id).
			Count(&count).Error; err == nil && count == 0 {
			return claim.ErrNotFound
		}
		return claim.ErrStatusConflict
	}

	return nil
}

func claimsToDomain(claimModels []models.ClaimModel) ([]*claim.Claim, error) {
	claims := make([]*claim.Claim, len(claimModels))
	for i := range claimModels {
		c, err := mappers.ClaimToDomain(&claimModels[i])
		if err != nil {
			return nil, err
		}
		claims[i] = c
	}
	return claims, nil
}
