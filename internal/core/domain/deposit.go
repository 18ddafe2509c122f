package domain

import (
	"time"

	"github.com/google/uuid"
)

// DepositStatus represents the lifecycle of a credited deposit.
type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "pending"
	DepositStatusConfirmed DepositStatus = "confirmed"
	DepositStatusFailed    DepositStatus = "failed"
)

// Deposit records an inbound credit to a user's wallet. Rows are created
// once per transfer attempt; only the status and confirmation count change
// afterward.
type Deposit struct {
	ID                    uuid.UUID     `json:"id"`
	WalletID              uuid.UUID     `json:"wallet_id"`
	TxHash                string        `json:"tx_hash"`
	Amount                int64         `json:"amount"`
	Confirmations         int           `json:"confirmations"`
	RequiredConfirmations int           `json:"required_confirmations"`
	Status                DepositStatus `json:"status"`
	FromAddress           string        `json:"from_address"`
	Method                string        `json:"method"` // e.g. "admin_approval", "chain_deposit"
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}
