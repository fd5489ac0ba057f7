package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	claimusecases "stepsign/internal/application/claim/usecases"
	sessionusecases "stepsign/internal/application/session/usecases"
	"stepsign/internal/domain/claim"
	"stepsign/internal/domain/session"
	"stepsign/internal/infrastructure/persistence/models"
	"stepsign/internal/infrastructure/repository"
	"stepsign/internal/shared/config"
	shareddb "stepsign/internal/shared/db"
	"stepsign/internal/shared/logger"
)

const testWallet = "0x7b8e0864967427679b4e129f79dc332a885c6087ec9e187b53451a9006ee15f2"

type mockGateway struct {
	mintDigest string
	mintErr    error
	execDigest string
	execErr    error
	balance    float64
	balanceErr error
}

func (g *mockGateway) MintTokens(ctx context.Context, recipient string, amount float64) (string, error) {
	if g.mintErr != nil {
		return "", g.mintErr
	}
	return g.mintDigest, nil
}

func (g *mockGateway) ExecuteTransaction(ctx context.Context, signedTxBase64 string) (string, error) {
	if g.execErr != nil {
		return "", g.execErr
	}
	return g.execDigest, nil
}

func (g *mockGateway) GetBalance(ctx context.Context, owner string) (float64, error) {
	if g.balanceErr != nil {
		return 0, g.balanceErr
	}
	return g.balance, nil
}

type nopNotifier struct{}

func (nopNotifier) MintFailed(context.Context, *claim.Claim, string) error { return nil }

// testEnv wires real use cases and sqlite-backed repositories behind the
// handlers, mocking only the ledger gateway.
type testEnv struct {
	db       *gorm.DB
	gateway  *mockGateway
	sessions *repository.SessionRepository
	claims   *repository.ClaimRepository

	sessionHandler *SessionHandler
	claimHandler   *ClaimHandler
	walletHandler  *WalletHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SessionModel{}, &models.ClaimModel{}))

	log := logger.NewNopLogger()
	gateway := &mockGateway{}
	sessionRepo := repository.NewSessionRepository(db)
	claimRepo := repository.NewClaimRepository(db)

	rules := config.RewardConfig{MinSteps: 10, MaxClaimsPerDay: 3, PerStep: 1_000_000}

	uploadUC := sessionusecases.NewUploadSessionUseCase(sessionRepo, log)
	getSessionUC := sessionusecases.NewGetSessionUseCase(sessionRepo)
	listSessionsUC := sessionusecases.NewListDeviceSessionsUseCase(sessionRepo)

	submitUC := claimusecases.NewSubmitClaimUseCase(sessionRepo, claimRepo, shareddb.NewTransactionManager(db), gateway, nopNotifier{}, log, rules)
	approveUC := claimusecases.NewApproveClaimUseCase(claimRepo, gateway, log)
	completeUC := claimusecases.NewCompleteClaimUseCase(claimRepo, gateway, log, "testnet")
	rejectUC := claimusecases.NewRejectClaimUseCase(claimRepo, log)
	listPendingUC := claimusecases.NewListPendingClaimsUseCase(claimRepo)
	listWalletUC := claimusecases.NewListWalletClaimsUseCase(claimRepo)
	summaryUC := claimusecases.NewGetWalletSummaryUseCase(claimRepo, gateway, log)

	return &testEnv{
		db:             db,
		gateway:        gateway,
		sessions:       sessionRepo,
		claims:         claimRepo,
		sessionHandler: NewSessionHandler(uploadUC, getSessionUC, listSessionsUC, log),
		claimHandler:   NewClaimHandler(submitUC, approveUC, completeUC, rejectUC, listPendingUC, listWalletUC, log),
		walletHandler:  NewWalletHandler(summaryUC, log),
	}
}

func (e *testEnv) seedSession(t *testing.T, steps int64) *session.Session {
	t.Helper()
	s, err := session.NewSession("insole-001", 1700000000, 1700003600, steps, 380.5, 110.2, 25.4, nil)
	require.NoError(t, err)
	require.NoError(t, e.sessions.Create(context.Background(), s))
	return s
}
