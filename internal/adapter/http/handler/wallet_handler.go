package handler

import (
	"custody-core/internal/adapter/http/dto"
	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"
	"custody-core/pkg/apperror"
	"custody-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet provisioning and the internal key reveal.
type WalletHandler struct {
	provisioner ports.ProvisionerService
	vault       ports.KeyVault
	walletRepo  ports.WalletRepository
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(provisioner ports.ProvisionerService, vault ports.KeyVault, walletRepo ports.WalletRepository) *WalletHandler {
	return &WalletHandler{provisioner: provisioner, vault: vault, walletRepo: walletRepo}
}

// Create handles POST /api/v1/wallet/create.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.ErrValidation("user_id must be a UUID"))
		return
	}

	walletType := domain.WalletType(req.WalletType)
	if walletType == "" {
		walletType = domain.WalletTypeHot
	}

	wallet, err := h.provisioner.Provision(c.Request.Context(), userID, req.CoinType, walletType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.CreateWalletResponse{
		WalletID:   wallet.ID.String(),
		Address:    wallet.Address,
		CoinType:   wallet.CoinType,
		WalletType: string(wallet.WalletType),
	})
}

// CreateBatch handles POST /api/v1/wallet/create-batch. Each asset is
// attempted independently; the summary reports per-asset outcomes.
func (h *WalletHandler) CreateBatch(c *gin.Context) {
	var req dto.CreateWalletBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.ErrValidation("user_id must be a UUID"))
		return
	}

	results := h.provisioner.ProvisionBatch(c.Request.Context(), userID, req.CoinTypes)
	response.Created(c, gin.H{"results": results})
}

// DecryptKey handles POST /api/v1/wallet/decrypt-key. Mounted behind
// the internal service guard; the decrypted key is returned to the
// caller and never logged or persisted.
func (h *WalletHandler) DecryptKey(c *gin.Context) {
	var req dto.DecryptKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		response.Error(c, apperror.ErrValidation("wallet_id must be a UUID"))
		return
	}

	wallet, err := h.walletRepo.GetByID(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if wallet == nil {
		response.Error(c, apperror.ErrNotFound("wallet"))
		return
	}

	privateKey, err := h.vault.Decrypt(wallet.EncryptedPrivateKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.DecryptKeyResponse{
		PrivateKey: privateKey,
		Address:    wallet.Address,
		CoinType:   wallet.CoinType,
	})
}
