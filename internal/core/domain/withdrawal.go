package domain

import (
	"time"

	"github.com/google/uuid"
)

// WithdrawalStatus represents the lifecycle of an outbound transfer.
type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "pending"
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusCompleted  WithdrawalStatus = "completed"
	WithdrawalStatusFailed     WithdrawalStatus = "failed"
)

// Withdrawal records an outbound transfer from a custodial wallet. A row
// is inserted as "processing" when the transfer is submitted on-chain;
// only its status transitions afterward.
type Withdrawal struct {
	ID        uuid.UUID        `json:"id"`
	WalletID  uuid.UUID        `json:"wallet_id"`
	ToAddress string           `json:"to_address"`
	Amount    int64            `json:"amount"`
	Fee       int64            `json:"fee"`
	TxHash    string           `json:"tx_hash"`
	Status    WithdrawalStatus `json:"status"`
	Method    string           `json:"method"` // e.g. "user_withdrawal", "merchant_forwarding"
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
