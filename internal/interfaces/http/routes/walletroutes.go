package routes

import (
	"github.com/gin-gonic/gin"

	"stepsign/internal/interfaces/http/handlers"
)

type WalletRouteConfig struct {
	WalletHandler *handlers.WalletHandler
}

func SetupWalletRoutes(api *gin.RouterGroup, config *WalletRouteConfig) {
	api.GET("/wallet/:address", config.WalletHandler.GetWalletSummary)
}
