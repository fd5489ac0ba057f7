package usecases

import (
	"context"
	"fmt"

	"stepsign/internal/application/claim/ledger"
	"stepsign/internal/domain/claim"
	vo "stepsign/internal/domain/claim/valueobjects"
	apperrors "stepsign/internal/shared/errors"
	"stepsign/internal/shared/logger"
)

// WalletSummary aggregates a wallet's ledger balance and claim history.
// Amounts are display units.
type WalletSummary struct {
	Address       string  `json:"address"`
	Balance       float64 `json:"balance"`
	TotalEarned   float64 `json:"total_earned"`
	ClaimCount    int     `json:"claim_count"`
	PendingClaims int     `json:"pending_claims"`
}

type GetWalletSummaryUseCase struct {
	claimRepo claim.Repository
	gateway   ledger.Gateway
	logger    logger.Interface
}

func NewGetWalletSummaryUseCase(claimRepo claim.Repository, gateway ledger.Gateway, logger logger.Interface) *GetWalletSummaryUseCase {
	return &GetWalletSummaryUseCase{
		claimRepo: claimRepo,
		gateway:   gateway,
		logger:    logger,
	}
}

func (uc *GetWalletSummaryUseCase) Execute(ctx context.Context, address string) (*WalletSummary, error) {
	if address == "" {
		return nil, apperrors.NewValidationError("wallet address is required")
	}

	// No cached fallback: a balance fetch failure fails the whole summary.
	balance, err := uc.gateway.GetBalance(ctx, address)
	if err != nil {
		uc.logger.Errorw("failed to fetch ledger balance", "error", err, "wallet", address)
		return nil, apperrors.NewLedgerError("failed to fetch balance", err.Error()).WithCause(err)
	}

	claims, err := uc.claimRepo.ListByWallet(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}

	var totalEarned vo.TokenAmount
	var completedCount, pendingCount int
	for _, c := range claims {
		switch c.Status() {
		case vo.ClaimStatusCompleted:
			totalEarned = totalEarned.Add(c.Reward())
			completedCount++
		case vo.ClaimStatusPending:
			pendingCount++
		}
	}

	return &WalletSummary{
		Address:       address,
		Balance:       balance,
		TotalEarned:   totalEarned.Display(),
		ClaimCount:    completedCount,
		PendingClaims: pendingCount,
	}, nil
}
