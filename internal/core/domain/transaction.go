package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the kind of ledger movement.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeForwarding TransactionType = "FORWARDING"
	TransactionTypeColdMove   TransactionType = "COLD_MOVE"
	TransactionTypeHotMove    TransactionType = "HOT_MOVE"
)

// Transaction is an immutable ledger row snapshotting a wallet balance
// mutation. BalanceAfter must always equal BalanceBefore plus or minus
// the movement amount; rows are append-only.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	WalletID      uuid.UUID       `json:"wallet_id"`
	Type          TransactionType `json:"type"`
	Amount        int64           `json:"amount"`
	BalanceBefore int64           `json:"balance_before"`
	BalanceAfter  int64           `json:"balance_after"`
	ReferenceID   string          `json:"reference_id"`
	TxHash        *string         `json:"tx_hash,omitempty"`
	Metadata      *string         `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
