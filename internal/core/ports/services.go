package ports

import (
	"context"
	"time"

	"custody-core/internal/core/domain"

	"github.com/google/uuid"
)

// KeyVault handles authenticated symmetric encryption of private keys.
// Plaintext keys never persist or cross the public boundary.
type KeyVault interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(envelope string) (string, error)
}

// Clock abstracts time for the token cache so expiry logic is testable.
type Clock interface {
	Now() time.Time
}

// --- Service Ports (Business Logic) ---

// ProvisionResult is the outcome of a single wallet provisioning attempt.
type ProvisionResult struct {
	Symbol   string    `json:"coin_type"`
	WalletID uuid.UUID `json:"wallet_id,omitempty"`
	Address  string    `json:"address,omitempty"`
	Err      string    `json:"error,omitempty"`
}

// ProvisionerService derives and persists per-asset custodial wallets.
type ProvisionerService interface {
	Provision(ctx context.Context, userID uuid.UUID, symbol string, walletType domain.WalletType) (*domain.Wallet, error)
	// ProvisionBatch attempts each asset independently; one failure never
	// aborts the others. The result reports per-asset success/failure for
	// selective retry.
	ProvisionBatch(ctx context.Context, userID uuid.UUID, symbols []string) []ProvisionResult
}

// SendRequest holds validated input for an outbound transfer.
type SendRequest struct {
	WalletID   uuid.UUID
	ToAddress  string
	Amount     int64
	CoinType   string
	GasPayment *domain.GasPayment // nil = resolve from the user's tier
	Method     string             // Withdrawal method label; defaults to "user_withdrawal"
}

// SendResult is the outcome of a Gateway send.
type SendResult struct {
	TxHash       string          `json:"tx_hash"`
	Receipt      *domain.Receipt `json:"receipt"`
	WithdrawalID uuid.UUID       `json:"withdrawal_id"`
}

// GatewayService coordinates sign+submit per chain family and records
// ledger rows.
type GatewayService interface {
	Send(ctx context.Context, req SendRequest) (*SendResult, error)
	GetReceipt(ctx context.Context, txHash string, coinType string) (*domain.Receipt, error)
	// MoveToCold / MoveToHot are same-custody bookkeeping moves between a
	// user's hot and cold rows for one asset; no on-chain transfer.
	MoveToCold(ctx context.Context, userID uuid.UUID, coinType string, amount int64) error
	MoveToHot(ctx context.Context, userID uuid.UUID, coinType string, amount int64) error
}

// GasPolicyService resolves the per-tier gas sponsorship decision.
// Lookup failure defaults to "no sponsorship" (fail-closed).
type GasPolicyService interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*domain.GasPayment, error)
}

// SettlementService runs the deposit-approval pipeline: credit the user,
// then forward the credited funds to the upstream merchant.
type SettlementService interface {
	Approve(ctx context.Context, requestID uuid.UUID) (*SettlementResult, error)
	Reject(ctx context.Context, requestID uuid.UUID) error
}

// SettlementResult summarizes an approval run.
type SettlementResult struct {
	RequestID        uuid.UUID `json:"request_id"`
	CreditTxHash     string    `json:"credit_tx_hash"`
	ForwardTxHash    string    `json:"forward_tx_hash,omitempty"`
	ForwardingFailed bool      `json:"forwarding_skipped,omitempty"`
	Warning          string    `json:"warning,omitempty"`
}
