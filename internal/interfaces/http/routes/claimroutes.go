package routes

import (
	"github.com/gin-gonic/gin"

	"stepsign/internal/infrastructure/ratelimit"
	"stepsign/internal/interfaces/http/handlers"
	"stepsign/internal/interfaces/http/middleware"
	"stepsign/internal/shared/logger"
)

type ClaimRouteConfig struct {
	ClaimHandler *handlers.ClaimHandler
	Limiter      ratelimit.Limiter
	Logger       logger.Interface
}

func SetupClaimRoutes(api *gin.RouterGroup, config *ClaimRouteConfig) {
	claims := api.Group("/claims")
	{
		claims.POST("",
			middleware.ClaimRateLimit(config.Limiter, config.Logger),
			config.ClaimHandler.SubmitClaim)

		// Specific paths before parameterized ones to avoid route conflicts
		claims.GET("/pending", config.ClaimHandler.ListPendingClaims)
		claims.GET("/wallet/:address", config.ClaimHandler.ListWalletClaims)

		claims.POST("/:id/approve", config.ClaimHandler.ApproveClaim)
		claims.POST("/:id/complete", config.ClaimHandler.CompleteClaim)
		claims.POST("/:id/reject", config.ClaimHandler.RejectClaim)
	}
}
