package handler

import (
	"context"

	"custody-core/internal/adapter/http/dto"
	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"
	"custody-core/pkg/apperror"
	"custody-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles sends, receipt polling and custody moves.
type TransactionHandler struct {
	gateway ports.GatewayService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(gateway ports.GatewayService) *TransactionHandler {
	return &TransactionHandler{gateway: gateway}
}

// Send handles POST /api/v1/transaction/send.
func (h *TransactionHandler) Send(c *gin.Context) {
	var req dto.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}

	walletID, err := uuid.Parse(req.FromWalletID)
	if err != nil {
		response.Error(c, apperror.ErrValidation("from_wallet_id must be a UUID"))
		return
	}

	var gas *domain.GasPayment
	if req.GasPayment != nil {
		gas = &domain.GasPayment{
			Sponsor:        req.GasPayment.Sponsor,
			Token:          req.GasPayment.Token,
			MaxUserPayment: req.GasPayment.MaxUserPayment,
		}
	}

	result, err := h.gateway.Send(c.Request.Context(), ports.SendRequest{
		WalletID:   walletID,
		ToAddress:  req.ToAddress,
		Amount:     req.Amount,
		CoinType:   req.CoinType,
		GasPayment: gas,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SendResponse{
		TxHash:       result.TxHash,
		WithdrawalID: result.WithdrawalID.String(),
		Receipt:      toReceiptResponse(result.Receipt),
	})
}

// GetReceipt handles GET /api/v1/transaction/receipt/:txHash.
// The coinType query parameter selects the chain family to poll.
func (h *TransactionHandler) GetReceipt(c *gin.Context) {
	txHash := c.Param("txHash")
	coinType := c.Query("coinType")
	if coinType == "" {
		response.Error(c, apperror.ErrValidation("coinType query parameter is required"))
		return
	}

	receipt, err := h.gateway.GetReceipt(c.Request.Context(), txHash, coinType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toReceiptResponse(receipt))
}

// MoveToCold handles POST /api/v1/transaction/move-to-cold.
func (h *TransactionHandler) MoveToCold(c *gin.Context) {
	h.move(c, h.gateway.MoveToCold, "moved_to_cold")
}

// MoveToHot handles POST /api/v1/transaction/move-to-hot.
func (h *TransactionHandler) MoveToHot(c *gin.Context) {
	h.move(c, h.gateway.MoveToHot, "moved_to_hot")
}

func (h *TransactionHandler) move(c *gin.Context, moveFn func(ctx context.Context, userID uuid.UUID, coinType string, amount int64) error, label string) {
	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.ErrValidation("user_id must be a UUID"))
		return
	}

	if err := moveFn(c.Request.Context(), userID, req.CoinType, req.Amount); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"result": label, "coin_type": req.CoinType, "amount": req.Amount})
}

func toReceiptResponse(r *domain.Receipt) *dto.ReceiptResponse {
	if r == nil {
		return nil
	}
	resp := &dto.ReceiptResponse{TxHash: r.TxHash, Status: string(r.Status)}
	if r.BlockNumber != nil {
		resp.BlockNumber = *r.BlockNumber
	}
	if r.GasUsed != nil {
		resp.GasUsed = *r.GasUsed
	}
	if r.Confirmations != nil {
		resp.Confirmations = *r.Confirmations
	}
	return resp
}
