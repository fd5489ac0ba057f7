package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stepsign/internal/application/claim/dto"
	"stepsign/internal/application/claim/usecases"
	"stepsign/internal/shared/logger"
	"stepsign/internal/shared/utils"
)

type ClaimHandler struct {
	submitUC      *usecases.SubmitClaimUseCase
	approveUC     *usecases.ApproveClaimUseCase
	completeUC    *usecases.CompleteClaimUseCase
	rejectUC      *usecases.RejectClaimUseCase
	listPendingUC *usecases.ListPendingClaimsUseCase
	listWalletUC  *usecases.ListWalletClaimsUseCase
	logger        logger.Interface
}

func NewClaimHandler(
	submitUC *usecases.SubmitClaimUseCase,
	approveUC *usecases.ApproveClaimUseCase,
	completeUC *usecases.CompleteClaimUseCase,
	rejectUC *usecases.RejectClaimUseCase,
	listPendingUC *usecases.ListPendingClaimsUseCase,
	listWalletUC *usecases.ListWalletClaimsUseCase,
	log logger.Interface,
) *ClaimHandler {
	return &ClaimHandler{
		submitUC:      submitUC,
		approveUC:     approveUC,
		completeUC:    completeUC,
		rejectUC:      rejectUC,
		listPendingUC: listPendingUC,
		listWalletUC:  listWalletUC,
		logger:        log,
	}
}

type SubmitClaimRequest struct {
	SessionID  uint   `json:"session_id" binding:"required"`
	UserWallet string `json:"user_wallet" binding:"required,suiaddress"`
}

type submitClaimResponse struct {
	Claim     *dto.ClaimDTO `json:"claim"`
	Minted    bool          `json:"minted"`
	TxDigest  string        `json:"tx_digest,omitempty"`
	MintError string        `json:"mint_error,omitempty"`
}

// SubmitClaim handles POST /api/claims
func (h *ClaimHandler) SubmitClaim(c *gin.Context) {
	var req SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid claim submission body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing session_id or user_wallet")
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), usecases.SubmitClaimCommand{
		SessionID:  req.SessionID,
		UserWallet: req.UserWallet,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, submitClaimResponse{
		Claim:     dto.FromClaim(result.Claim),
		Minted:    result.Minted,
		TxDigest:  result.TxDigest,
		MintError: result.MintError,
	}, result.Message)
}

// ListPendingClaims handles GET /api/claims/pending
func (h *ClaimHandler) ListPendingClaims(c *gin.Context) {
	results, err := h.listPendingUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.FromClaims(results))
}

// ListWalletClaims handles GET /api/claims/wallet/:address
func (h *ClaimHandler) ListWalletClaims(c *gin.Context) {
	results, err := h.listWalletUC.Execute(c.Request.Context(), c.Param("address"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.FromClaims(results))
}

type approveClaimResponse struct {
	Claim    *dto.ClaimDTO `json:"claim"`
	TxDigest string        `json:"tx_digest"`
}

// ApproveClaim handles POST /api/claims/:id/approve
func (h *ClaimHandler) ApproveClaim(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "claim")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.approveUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, approveClaimResponse{
		Claim:    dto.FromClaim(result.Claim),
		TxDigest: result.TxDigest,
	})
}

type CompleteClaimRequest struct {
	SignedTransaction string `json:"signedTransaction"`
}

type completeClaimResponse struct {
	Claim       *dto.ClaimDTO `json:"claim"`
	TxDigest    string        `json:"tx_digest"`
	ExplorerURL string        `json:"explorer_url"`
}

// CompleteClaim handles POST /api/claims/:id/complete
func (h *ClaimHandler) CompleteClaim(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "claim")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CompleteClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing signedTransaction")
		return
	}

	result, err := h.completeUC.Execute(c.Request.Context(), usecases.CompleteClaimCommand{
		ClaimID:           id,
		SignedTransaction: req.SignedTransaction,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, completeClaimResponse{
		Claim:       dto.FromClaim(result.Claim),
		TxDigest:    result.TxDigest,
		ExplorerURL: result.ExplorerURL,
	})
}

// RejectClaim handles POST /api/claims/:id/reject
func (h *ClaimHandler) RejectClaim(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "claim")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.rejectUC.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Claim rejected", nil)
}
