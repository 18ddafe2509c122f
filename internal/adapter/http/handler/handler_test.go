package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"
	"custody-core/internal/core/ports/mocks"
	"custody-core/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const serviceSecret = "test-service-secret"

type routerMocks struct {
	provisioner *mocks.MockProvisionerService
	gateway     *mocks.MockGatewayService
	settlement  *mocks.MockSettlementService
	vault       *mocks.MockKeyVault
	walletRepo  *mocks.MockWalletRepository
}

func newTestRouter(t *testing.T) (*gin.Engine, routerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := routerMocks{
		provisioner: mocks.NewMockProvisionerService(ctrl),
		gateway:     mocks.NewMockGatewayService(ctrl),
		settlement:  mocks.NewMockSettlementService(ctrl),
		vault:       mocks.NewMockKeyVault(ctrl),
		walletRepo:  mocks.NewMockWalletRepository(ctrl),
	}

	r := SetupRouter(RouterDeps{
		ProvisionerSvc: m.provisioner,
		GatewaySvc:     m.gateway,
		SettlementSvc:  m.settlement,
		Vault:          m.vault,
		WalletRepo:     m.walletRepo,
		ServiceSecret:  serviceSecret,
		Logger:         zerolog.Nop(),
	})
	return r, m
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func serviceToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "gateway-internal",
		"scope": "internal-service",
		"exp":   time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(serviceSecret))
	require.NoError(t, err)
	return signed
}

func TestWalletCreate_Success(t *testing.T) {
	r, m := newTestRouter(t)
	userID := uuid.New()
	walletID := uuid.New()

	m.provisioner.EXPECT().
		Provision(gomock.Any(), userID, "USDT", domain.WalletTypeHot).
		Return(&domain.Wallet{
			ID:         walletID,
			UserID:     userID,
			CoinType:   "USDT",
			Address:    "0x52908400098527886E0F7030069857D2E4169EE7",
			WalletType: domain.WalletTypeHot,
		}, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallet/create", gin.H{
		"user_id":   userID.String(),
		"coin_type": "USDT",
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), walletID.String())
	assert.Contains(t, w.Body.String(), "0x52908400098527886E0F7030069857D2E4169EE7")
	assert.NotContains(t, w.Body.String(), "private")
}

func TestWalletCreate_RejectsBadCoinType(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallet/create", gin.H{
		"user_id":   uuid.New().String(),
		"coin_type": "usdt; DROP TABLE wallets",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_001")
}

func TestWalletCreateBatch_ReportsPerAssetOutcome(t *testing.T) {
	r, m := newTestRouter(t)
	userID := uuid.New()

	m.provisioner.EXPECT().
		ProvisionBatch(gomock.Any(), userID, []string{"USDT", "KRWQ"}).
		Return([]ports.ProvisionResult{
			{Symbol: "USDT", WalletID: uuid.New(), Address: "0xabc"},
			{Symbol: "KRWQ", Err: "[CFG_003] Unsupported asset"},
		})

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallet/create-batch", gin.H{
		"user_id":    userID.String(),
		"coin_types": []string{"USDT", "KRWQ"},
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "CFG_003")
}

func TestDecryptKey_RequiresServiceToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallet/decrypt-key", gin.H{
		"wallet_id": uuid.New().String(),
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_001")
}

func TestDecryptKey_Success(t *testing.T) {
	r, m := newTestRouter(t)
	walletID := uuid.New()

	m.walletRepo.EXPECT().GetByID(gomock.Any(), walletID).Return(&domain.Wallet{
		ID:                  walletID,
		CoinType:            "USDT",
		Address:             "0xfeed",
		EncryptedPrivateKey: "envelope",
	}, nil)
	m.vault.EXPECT().Decrypt("envelope").Return("deadbeef", nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallet/decrypt-key", gin.H{
		"wallet_id": walletID.String(),
	}, map[string]string{"Authorization": "Bearer " + serviceToken(t)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deadbeef")
}

func TestDecryptKey_WalletNotFound(t *testing.T) {
	r, m := newTestRouter(t)
	walletID := uuid.New()

	m.walletRepo.EXPECT().GetByID(gomock.Any(), walletID).Return(nil, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallet/decrypt-key", gin.H{
		"wallet_id": walletID.String(),
	}, map[string]string{"Authorization": "Bearer " + serviceToken(t)})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_003")
}

func TestTransactionSend_Success(t *testing.T) {
	r, m := newTestRouter(t)
	walletID := uuid.New()
	withdrawalID := uuid.New()

	m.gateway.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.SendRequest) (*ports.SendResult, error) {
			assert.Equal(t, walletID, req.WalletID)
			assert.Equal(t, int64(50), req.Amount)
			assert.Equal(t, "USDT", req.CoinType)
			assert.Nil(t, req.GasPayment)
			return &ports.SendResult{
				TxHash:       "0xhash",
				WithdrawalID: withdrawalID,
				Receipt:      &domain.Receipt{TxHash: "0xhash", Status: domain.ReceiptStatusPending},
			}, nil
		})

	w := doJSON(t, r, http.MethodPost, "/api/v1/transaction/send", gin.H{
		"from_wallet_id": walletID.String(),
		"to_address":     "0x52908400098527886E0F7030069857D2E4169EE7",
		"amount":         50,
		"coin_type":      "USDT",
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "0xhash")
	assert.Contains(t, w.Body.String(), withdrawalID.String())
}

func TestTransactionSend_PinnedGasPayment(t *testing.T) {
	r, m := newTestRouter(t)
	walletID := uuid.New()

	m.gateway.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.SendRequest) (*ports.SendResult, error) {
			require.NotNil(t, req.GasPayment)
			assert.True(t, req.GasPayment.Sponsor)
			assert.Equal(t, "USDT", req.GasPayment.Token)
			return &ports.SendResult{TxHash: "0xhash", WithdrawalID: uuid.New()}, nil
		})

	w := doJSON(t, r, http.MethodPost, "/api/v1/transaction/send", gin.H{
		"from_wallet_id": walletID.String(),
		"to_address":     "TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH",
		"amount":         10,
		"coin_type":      "USDT",
		"gas_payment":    gin.H{"sponsor": true, "token": "USDT"},
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestTransactionSend_ColdWalletMapsTo403(t *testing.T) {
	r, m := newTestRouter(t)

	m.gateway.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrColdWalletSend())

	w := doJSON(t, r, http.MethodPost, "/api/v1/transaction/send", gin.H{
		"from_wallet_id": uuid.New().String(),
		"to_address":     "0x52908400098527886E0F7030069857D2E4169EE7",
		"amount":         10,
		"coin_type":      "USDT",
	}, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_002")
}

func TestGetReceipt_Success(t *testing.T) {
	r, m := newTestRouter(t)
	block := int64(120)
	conf := int64(3)

	m.gateway.EXPECT().
		GetReceipt(gomock.Any(), "0xhash", "USDT").
		Return(&domain.Receipt{
			TxHash:        "0xhash",
			Status:        domain.ReceiptStatusCompleted,
			BlockNumber:   &block,
			Confirmations: &conf,
		}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/transaction/receipt/0xhash?coinType=USDT", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)
	assert.Contains(t, w.Body.String(), `"block_number":120`)
}

func TestGetReceipt_MissingCoinType(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/transaction/receipt/0xhash", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveToCold_Success(t *testing.T) {
	r, m := newTestRouter(t)
	userID := uuid.New()

	m.gateway.EXPECT().
		MoveToCold(gomock.Any(), userID, "USDT", int64(200)).
		Return(nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/transaction/move-to-cold", gin.H{
		"user_id":   userID.String(),
		"coin_type": "USDT",
		"amount":    200,
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "moved_to_cold")
}

func TestMoveToHot_NegativeAmountRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/transaction/move-to-hot", gin.H{
		"user_id":   uuid.New().String(),
		"coin_type": "USDT",
		"amount":    -5,
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettlementApprove_Success(t *testing.T) {
	r, m := newTestRouter(t)
	requestID := uuid.New()

	m.settlement.EXPECT().
		Approve(gomock.Any(), requestID).
		Return(&ports.SettlementResult{
			RequestID:     requestID,
			CreditTxHash:  "0xcredit",
			ForwardTxHash: "0xforward",
		}, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/settlement/"+requestID.String()+"/approve", nil,
		map[string]string{"Authorization": "Bearer " + serviceToken(t)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"approved"`)
	assert.Contains(t, w.Body.String(), "0xforward")
}

func TestSettlementApprove_ForwardingSkippedSurfacesWarning(t *testing.T) {
	r, m := newTestRouter(t)
	requestID := uuid.New()

	m.settlement.EXPECT().
		Approve(gomock.Any(), requestID).
		Return(&ports.SettlementResult{
			RequestID:        requestID,
			CreditTxHash:     "0xcredit",
			ForwardingFailed: true,
			Warning:          "merchant has no KRWQ wallet",
		}, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/settlement/"+requestID.String()+"/approve", nil,
		map[string]string{"Authorization": "Bearer " + serviceToken(t)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "approved_forwarding_skipped")
	assert.Contains(t, w.Body.String(), "merchant has no KRWQ wallet")
}

func TestSettlementApprove_NonPendingConflict(t *testing.T) {
	r, m := newTestRouter(t)
	requestID := uuid.New()

	m.settlement.EXPECT().
		Approve(gomock.Any(), requestID).
		Return(nil, apperror.ErrRequestNotPending("approved"))

	w := doJSON(t, r, http.MethodPost, "/api/v1/settlement/"+requestID.String()+"/approve", nil,
		map[string]string{"Authorization": "Bearer " + serviceToken(t)})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_005")
}

func TestSettlementReject_RequiresServiceToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/settlement/"+uuid.New().String()+"/reject", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSettlementReject_Success(t *testing.T) {
	r, m := newTestRouter(t)
	requestID := uuid.New()

	m.settlement.EXPECT().Reject(gomock.Any(), requestID).Return(nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/settlement/"+requestID.String()+"/reject", nil,
		map[string]string{"Authorization": "Bearer " + serviceToken(t)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)
}
