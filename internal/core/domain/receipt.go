package domain

// ReceiptStatus is the chain-reported execution state of a submitted
// transaction as seen through the Gateway's polling path.
type ReceiptStatus string

const (
	// ReceiptStatusPending means the chain has not mined the transaction
	// yet. Absence of a receipt is pending, never an error.
	ReceiptStatusPending ReceiptStatus = "pending"
	// ReceiptStatusProcessing means polling hit a transient adapter or
	// network failure; repeated polling can recover.
	ReceiptStatusProcessing ReceiptStatus = "processing"
	ReceiptStatusCompleted  ReceiptStatus = "completed"
	ReceiptStatusFailed     ReceiptStatus = "failed"
)

// Receipt is the chain-reported record of a submitted transaction.
type Receipt struct {
	TxHash        string        `json:"tx_hash"`
	Status        ReceiptStatus `json:"status"`
	BlockNumber   *int64        `json:"block_number,omitempty"`
	GasUsed       *int64        `json:"gas_used,omitempty"`
	Confirmations *int64        `json:"confirmations,omitempty"`
}
