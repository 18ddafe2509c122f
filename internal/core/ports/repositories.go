package ports

import (
	"context"
	"time"

	"custody-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepository defines persistence operations for custodial wallets.
// Methods accepting pgx.Tx run inside transaction blocks and take the row
// lock that serializes concurrent balance mutation on the same wallet.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByUser(ctx context.Context, userID uuid.UUID, coinType string, walletType domain.WalletType) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	GetByUserForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID, coinType string, walletType domain.WalletType) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance int64) error
}

// AssetRepository reads supported-asset configuration. Implementations
// resolve the chain family tag at load time.
type AssetRepository interface {
	GetBySymbol(ctx context.Context, symbol string) (*domain.SupportedAsset, error)
	List(ctx context.Context) ([]domain.SupportedAsset, error)
}

// UserRepository reads the user hierarchy (tier, upstream merchant).
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// TransferRequestRepository defines persistence for admin-approvable
// credit requests, including the persisted settlement step marker.
type TransferRequestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferRequest, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TransferRequest, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransferRequestStatus, txHash *string) error
	UpdateStep(ctx context.Context, id uuid.UUID, step domain.SettlementStep) error
}

// DepositRepository defines persistence for deposits.
type DepositRepository interface {
	Create(ctx context.Context, tx pgx.Tx, deposit *domain.Deposit) error
	GetByTxHash(ctx context.Context, txHash string) (*domain.Deposit, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DepositStatus, confirmations int) error
}

// WithdrawalRepository defines persistence for withdrawals.
type WithdrawalRepository interface {
	Create(ctx context.Context, tx pgx.Tx, withdrawal *domain.Withdrawal) error
	GetByTxHash(ctx context.Context, txHash string) (*domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.WithdrawalStatus) error
}

// TransactionRepository defines persistence for append-only ledger rows.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.Transaction, error)
}

// NotificationRepository writes notification rows.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
}

// GasPolicyRepository reads externally managed sponsorship policy rows.
type GasPolicyRepository interface {
	GetByTier(ctx context.Context, tier domain.UserTier) (*domain.GasPolicy, error)
}

// SponsorTokenRepository persists the cached sponsor OAuth token.
type SponsorTokenRepository interface {
	Get(ctx context.Context) (*domain.SponsorToken, error)
	Upsert(ctx context.Context, token *domain.SponsorToken) error
}

// TokenCache is the Redis-layer fast path for the sponsor token.
type TokenCache interface {
	Get(ctx context.Context) (string, time.Time, error) // empty token = miss
	Set(ctx context.Context, token string, expiresAt time.Time) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
