package handler

import (
	"custody-core/internal/adapter/http/dto"
	"custody-core/internal/core/ports"
	"custody-core/pkg/apperror"
	"custody-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SettlementHandler exposes the admin approve/reject actions for
// pending deposit requests.
type SettlementHandler struct {
	settlementSvc ports.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementSvc ports.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementSvc: settlementSvc}
}

// Approve handles POST /api/v1/settlement/:id/approve.
func (h *SettlementHandler) Approve(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("settlement id must be a UUID"))
		return
	}

	result, err := h.settlementSvc.Approve(c.Request.Context(), requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := "approved"
	if result.ForwardingFailed {
		status = "approved_forwarding_skipped"
	}
	response.OK(c, dto.SettlementResponse{
		RequestID:     result.RequestID.String(),
		Status:        status,
		CreditTxHash:  result.CreditTxHash,
		ForwardTxHash: result.ForwardTxHash,
		Warning:       result.Warning,
	})
}

// Reject handles POST /api/v1/settlement/:id/reject.
func (h *SettlementHandler) Reject(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("settlement id must be a UUID"))
		return
	}

	if err := h.settlementSvc.Reject(c.Request.Context(), requestID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SettlementResponse{RequestID: requestID.String(), Status: "rejected"})
}
