package usecases

import (
	"context"
	"fmt"

	"stepsign/internal/domain/claim"
)

// ListPendingClaimsUseCase returns the admin review queue, oldest first.
type ListPendingClaimsUseCase struct {
	claimRepo claim.Repository
}

func NewListPendingClaimsUseCase(claimRepo claim.Repository) *ListPendingClaimsUseCase {
	return &ListPendingClaimsUseCase{claimRepo: claimRepo}
}

func (uc *ListPendingClaimsUseCase) Execute(ctx context.Context) ([]*claim.Claim, error) {
	claims, err := uc.claimRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending claims: %w", err)
	}
	return claims, nil
}

// ListWalletClaimsUseCase returns a wallet's claim history, newest first.
type ListWalletClaimsUseCase struct {
	claimRepo claim.Repository
}

func NewListWalletClaimsUseCase(claimRepo claim.Repository) *ListWalletClaimsUseCase {
	return &ListWalletClaimsUseCase{claimRepo: claimRepo}
}

func (uc *ListWalletClaimsUseCase) Execute(ctx context.Context, wallet string) ([]*claim.Claim, error) {
	claims, err := uc.claimRepo.ListByWallet(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet claims: %w", err)
	}
	return claims, nil
}
