package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransferRequestStatus is the admin-approval state of a pending credit.
// Transitions are one-way: pending -> approved or pending -> rejected,
// both terminal.
type TransferRequestStatus string

const (
	TransferRequestPending  TransferRequestStatus = "pending"
	TransferRequestApproved TransferRequestStatus = "approved"
	TransferRequestRejected TransferRequestStatus = "rejected"
)

// SettlementStep is the persisted step marker of the approval pipeline.
// A mid-pipeline crash leaves the marker at the last completed step so an
// operator can see exactly how far settlement got.
type SettlementStep string

const (
	StepNone            SettlementStep = ""
	StepCreditTransfer  SettlementStep = "credit_transfer"
	StepCreditLedger    SettlementStep = "credit_ledger"
	StepResolveMerchant SettlementStep = "resolve_merchant"
	StepForwardTransfer SettlementStep = "forward_transfer"
	StepZeroBalance     SettlementStep = "zero_balance"
	StepRecorded        SettlementStep = "recorded"
)

// TransferRequest is an admin-approvable request to credit a user with
// funds from the asset's treasury wallet.
type TransferRequest struct {
	ID        uuid.UUID             `json:"id"`
	UserID    uuid.UUID             `json:"user_id"`
	CoinType  string                `json:"coin_type"`
	Amount    int64                 `json:"amount"`
	Status    TransferRequestStatus `json:"status"`
	Step      SettlementStep        `json:"step"`
	TxHash    *string               `json:"tx_hash,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// IsPending reports whether the request can still be approved or rejected.
func (r *TransferRequest) IsPending() bool {
	return r.Status == TransferRequestPending
}
