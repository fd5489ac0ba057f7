package routes

import (
	"github.com/gin-gonic/gin"

	"stepsign/internal/interfaces/http/handlers"
)

type SessionRouteConfig struct {
	SessionHandler *handlers.SessionHandler
}

func SetupSessionRoutes(api *gin.RouterGroup, config *SessionRouteConfig) {
	sessions := api.Group("/sessions")
	{
		sessions.POST("", config.SessionHandler.UploadSession)

		// Specific paths before parameterized ones to avoid route conflicts
		sessions.GET("/device/:device_id", config.SessionHandler.ListDeviceSessions)
		sessions.GET("/:id", config.SessionHandler.GetSession)
	}
}
