package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stepsign/internal/application/session/dto"
	"stepsign/internal/application/session/usecases"
	"stepsign/internal/domain/session"
	"stepsign/internal/shared/logger"
	"stepsign/internal/shared/utils"
)

type SessionHandler struct {
	uploadUC *usecases.UploadSessionUseCase
	getUC    *usecases.GetSessionUseCase
	listUC   *usecases.ListDeviceSessionsUseCase
	logger   logger.Interface
}

func NewSessionHandler(
	uploadUC *usecases.UploadSessionUseCase,
	getUC *usecases.GetSessionUseCase,
	listUC *usecases.ListDeviceSessionsUseCase,
	log logger.Interface,
) *SessionHandler {
	return &SessionHandler{
		uploadUC: uploadUC,
		getUC:    getUC,
		listUC:   listUC,
		logger:   log,
	}
}

type UploadSessionRequest struct {
	DeviceID       string                 `json:"device_id" binding:"required"`
	StartTime      int64                  `json:"start_time" binding:"required"`
	EndTime        int64                  `json:"end_time" binding:"required"`
	TotalSteps     *int64                 `json:"total_steps" binding:"required"`
	TotalDistance  float64                `json:"total_distance"`
	AvgCadence     float64                `json:"avg_cadence"`
	CaloriesBurned float64                `json:"calories_burned"`
	SessionData    map[string]interface{} `json:"session_data"`
}

// UploadSession handles POST /api/sessions
func (h *SessionHandler) UploadSession(c *gin.Context) {
	var req UploadSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid session upload body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := h.uploadUC.Execute(c.Request.Context(), usecases.UploadSessionCommand{
		DeviceID:       req.DeviceID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		TotalSteps:     *req.TotalSteps,
		TotalDistance:  req.TotalDistance,
		AvgCadence:     req.AvgCadence,
		CaloriesBurned: req.CaloriesBurned,
		SessionData:    req.SessionData,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.FromSession(result))
}

// GetSession handles GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "session")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.FromSession(result))
}

// ListDeviceSessions handles GET /api/sessions/device/:device_id
func (h *SessionHandler) ListDeviceSessions(c *gin.Context) {
	deviceID := c.Param("device_id")
	limit := utils.ParseLimitQuery(c, session.DefaultListLimit)

	results, err := h.listUC.Execute(c.Request.Context(), deviceID, limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.FromSessions(results))
}
