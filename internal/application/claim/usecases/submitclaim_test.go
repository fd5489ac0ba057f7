package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "stepsign/internal/domain/claim/valueobjects"
	"stepsign/internal/shared/config"
	apperrors "stepsign/internal/shared/errors"
	"stepsign/internal/shared/logger"
)

func defaultRules() config.RewardConfig {
	return config.RewardConfig{
		MinSteps:        10,
		MaxClaimsPerDay: 3,
		PerStep:         1_000_000,
	}
}

func newSubmitUC(sessions *memSessionRepo, claims *memClaimRepo, gw *mockGateway, notifier *mockNotifier) *SubmitClaimUseCase {
	return NewSubmitClaimUseCase(sessions, claims, passthroughTx{}, gw, notifier, logger.NewNopLogger(), defaultRules())
}

func TestSubmitClaim_AutoMintSuccess(t *testing.T) {
	sessions := newMemSessionRepo(sessionWithSteps(1, 500))
	claims := newMemClaimRepo()
	gw := &mockGateway{mintDigest: "9yHxKqQqPBdb"}

	uc := newSubmitUC(sessions, claims, gw, nil)
	result, err := uc.Execute(context.Background(), SubmitClaimCommand{SessionID: 1, UserWallet: testWallet})

	require.NoError(t, err)
	assert.True(t, result.Minted)
	assert.Equal(t, "9yHxKqQqPBdb", result.TxDigest)
	assert.Equal(t, int64(500_000_000), result.Claim.Reward().BaseUnits())
	assert.Equal(t, vo.ClaimStatusCompleted, result.Claim.Status())

	// Ledger received display units.
	assert.Equal(t, 500.0, gw.lastAmount)
	assert.Equal(t, testWallet, gw.lastRecipient)

	persisted, err := claims.GetByID(context.Background(), result.Claim.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.ClaimStatusCompleted, persisted.Status())
	require.NotNil(t, persisted.TxDigest())
	assert.Equal(t, "9yHxKqQqPBdb", *persisted.TxDigest())
}

func TestSubmitClaim_BelowMinimumSteps(t *testing.T) {
	sessions := newMemSessionRepo(sessionWithSteps(1, 5))
	claims := newMemClaimRepo()
	gw := &mockGateway{}

	uc := newSubmitUC(sessions, claims, gw, nil)
	result, err := uc.Execute(context.Background(), SubmitClaimCommand{SessionID: 1, UserWallet: testWallet})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsValidationError(err))

	appErr := apperrors.GetAppError(err)
	assert.Contains(t, appErr.Message, "minimum 10 steps")
	assert.Contains(t, appErr.Details, "5 steps")

	// No claim row was created and the ledger was never touched.
	assert.Empty(t, claims.claims)
	assert.Zero(t, gw.mintCalls)
}

func TestSubmitClaim_SessionNotFound(t *testing.T) {
	uc := newSubmitUC(newMemSessionRepo(), newMemClaimRepo(), &mockGateway{}, nil)

	_, err := uc.Execute(context.Background(), SubmitClaimCommand{SessionID: 42, UserWallet: testWallet})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSubmitClaim_DailyLimitReached(t *testing.T) {
	sessions := newMemSessionRepo(sessionWithSteps(1, 500))
	claims := newMemClaimRepo(
		claimWithStatus(1, vo.ClaimStatusCompleted),
		claimWithStatus(2, vo.ClaimStatusPending),
		claimWithStatus(3, vo.ClaimStatusRejected),
	)
	gw := &mockGateway{}

	uc := newSubmitUC(sessions, claims, gw, nil)
	_, err := uc.Execute(context.Background(), SubmitClaimCommand{SessionID: 1, UserWallet: testWallet})

	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimitError(err))
	assert.Contains(t, apperrors.GetAppError(err).Message, "3 claims per day")

	// The existing claims are untouched and no fourth row appeared.
	assert.Len(t, claims.claims, 3)
	assert.Zero(t, gw.mintCalls)
}

func TestSubmitClaim_MintFailureLeavesClaimPending(t *testing.T) {
	sessions := newMemSessionRepo(sessionWithSteps(1, 500))
	claims := newMemClaimRepo()
	gw := &mockGateway{mintErr: errors.New("rpc timeout")}
	notifier := &mockNotifier{}

	uc := newSubmitUC(sessions, claims, gw, notifier)
	result, err := uc.Execute(context.Background(), SubmitClaimCommand{SessionID: 1, UserWallet: testWallet})

	// The submission itself is still accepted.
	require.NoError(t, err)
	assert.False(t, result.Minted)
	assert.Empty(t, result.TxDigest)
	assert.Equal(t, "rpc timeout", result.MintError)
	assert.Contains(t, result.Message, "manual approval")

	persisted, err := claims.GetByID(context.Background(), result.Claim.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.ClaimStatusPending, persisted.Status())
	assert.Nil(t, persisted.TxDigest())
	assert.Equal(t, int64(500_000_000), persisted.Reward().BaseUnits())

	// Operator alert was dispatched.
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "rpc timeout", notifier.lastMsg)
}

func TestSubmitClaim_RewardUsesConfiguredRate(t *testing.T) {
	sessions := newMemSessionRepo(sessionWithSteps(1, 1234))
	claims := newMemClaimRepo()
	gw := &mockGateway{mintDigest: "digest"}

	rules := config.RewardConfig{MinSteps: 10, MaxClaimsPerDay: 3, PerStep: 2500}
	uc := NewSubmitClaimUseCase(sessions, claims, passthroughTx{}, gw, nil, logger.NewNopLogger(), rules)

	result, err := uc.Execute(context.Background(), SubmitClaimCommand{SessionID: 1, UserWallet: testWallet})

	require.NoError(t, err)
	assert.Equal(t, int64(1234*2500), result.Claim.Reward().BaseUnits())
	assert.Equal(t, int64(2500), result.Claim.RewardPerStep())
}
