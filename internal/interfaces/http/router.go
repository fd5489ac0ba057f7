package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	claimusecases "stepsign/internal/application/claim/usecases"
	sessionusecases "stepsign/internal/application/session/usecases"
	"stepsign/internal/infrastructure/config"
	"stepsign/internal/infrastructure/ledger"
	"stepsign/internal/infrastructure/notify"
	"stepsign/internal/infrastructure/ratelimit"
	"stepsign/internal/infrastructure/repository"
	"stepsign/internal/interfaces/http/handlers"
	"stepsign/internal/interfaces/http/middleware"
	"stepsign/internal/interfaces/http/routes"
	shareddb "stepsign/internal/shared/db"
	"stepsign/internal/shared/logger"
)

// Router wires repositories, use cases and handlers onto a gin engine.
type Router struct {
	engine *gin.Engine
}

// NewRouter builds the full HTTP surface from configuration.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS())

	sessionRepo := repository.NewSessionRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	txManager := shareddb.NewTransactionManager(db)

	gateway, err := ledger.NewSuiGateway(&cfg.Ledger, log.Named("ledger"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger gateway: %w", err)
	}

	var notifier claimusecases.AlertNotifier = notify.NopNotifier{}
	if cfg.Alerts.Enabled {
		notifier = notify.NewMailer(cfg.Alerts, log.Named("alerts"))
	}

	var limiter ratelimit.Limiter = ratelimit.NopLimiter{}
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisLimiter(client, cfg.Redis.ClaimsPerMinute)
	}

	uploadUC := sessionusecases.NewUploadSessionUseCase(sessionRepo, log)
	getSessionUC := sessionusecases.NewGetSessionUseCase(sessionRepo)
	listSessionsUC := sessionusecases.NewListDeviceSessionsUseCase(sessionRepo)

	submitUC := claimusecases.NewSubmitClaimUseCase(sessionRepo, claimRepo, txManager, gateway, notifier, log, cfg.Reward)
	approveUC := claimusecases.NewApproveClaimUseCase(claimRepo, gateway, log)
	completeUC := claimusecases.NewCompleteClaimUseCase(claimRepo, gateway, log, cfg.Ledger.Network)
	rejectUC := claimusecases.NewRejectClaimUseCase(claimRepo, log)
	listPendingUC := claimusecases.NewListPendingClaimsUseCase(claimRepo)
	listWalletUC := claimusecases.NewListWalletClaimsUseCase(claimRepo)
	summaryUC := claimusecases.NewGetWalletSummaryUseCase(claimRepo, gateway, log)

	sessionHandler := handlers.NewSessionHandler(uploadUC, getSessionUC, listSessionsUC, log)
	claimHandler := handlers.NewClaimHandler(submitUC, approveUC, completeUC, rejectUC, listPendingUC, listWalletUC, log)
	walletHandler := handlers.NewWalletHandler(summaryUC, log)

	engine.GET("/health", handlers.Health)

	api := engine.Group("/api")
	routes.SetupSessionRoutes(api, &routes.SessionRouteConfig{SessionHandler: sessionHandler})
	routes.SetupClaimRoutes(api, &routes.ClaimRouteConfig{
		ClaimHandler: claimHandler,
		Limiter:      limiter,
		Logger:       log,
	})
	routes.SetupWalletRoutes(api, &routes.WalletRouteConfig{WalletHandler: walletHandler})

	return &Router{engine: engine}, nil
}

// GetEngine exposes the underlying gin engine for the HTTP server.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
