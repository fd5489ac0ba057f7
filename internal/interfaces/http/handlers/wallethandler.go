package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stepsign/internal/application/claim/usecases"
	"stepsign/internal/shared/logger"
	"stepsign/internal/shared/utils"
)

type WalletHandler struct {
	summaryUC *usecases.GetWalletSummaryUseCase
	logger    logger.Interface
}

func NewWalletHandler(summaryUC *usecases.GetWalletSummaryUseCase, log logger.Interface) *WalletHandler {
	return &WalletHandler{
		summaryUC: summaryUC,
		logger:    log,
	}
}

// GetWalletSummary handles GET /api/wallet/:address
func (h *WalletHandler) GetWalletSummary(c *gin.Context) {
	summary, err := h.summaryUC.Execute(c.Request.Context(), c.Param("address"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}
