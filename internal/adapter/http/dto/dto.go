package dto

// CreateWalletRequest is the request body for single-wallet provisioning.
type CreateWalletRequest struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	CoinType   string `json:"coin_type" binding:"required,coin_type"`
	WalletType string `json:"wallet_type" binding:"omitempty,oneof=hot cold"`
}

// CreateWalletResponse is the response body for successful provisioning.
// The private key never appears here; it lives only inside the vault.
type CreateWalletResponse struct {
	WalletID   string `json:"wallet_id"`
	Address    string `json:"address"`
	CoinType   string `json:"coin_type"`
	WalletType string `json:"wallet_type"`
}

// CreateWalletBatchRequest provisions one wallet per listed asset.
type CreateWalletBatchRequest struct {
	UserID    string   `json:"user_id" binding:"required,uuid"`
	CoinTypes []string `json:"coin_types" binding:"required,min=1,max=20,dive,coin_type"`
}

// DecryptKeyRequest is the request body for the internal key reveal.
type DecryptKeyRequest struct {
	WalletID string `json:"wallet_id" binding:"required,uuid"`
}

// DecryptKeyResponse carries a decrypted signing key. Served only on the
// internal service path, behind the service JWT guard.
type DecryptKeyResponse struct {
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
	CoinType   string `json:"coin_type"`
}

// GasPayment pins an explicit sponsorship decision on a send. Omitted,
// the gateway resolves it from the owner's tier.
type GasPayment struct {
	Sponsor        bool   `json:"sponsor"`
	Token          string `json:"token,omitempty" binding:"omitempty,coin_type"`
	MaxUserPayment int64  `json:"max_user_payment,omitempty" binding:"omitempty,gte=0"`
}

// SendRequest is the request body for an outbound transfer.
type SendRequest struct {
	FromWalletID string      `json:"from_wallet_id" binding:"required,uuid"`
	ToAddress    string      `json:"to_address" binding:"required,chain_address"`
	Amount       int64       `json:"amount" binding:"required,gt=0"`
	CoinType     string      `json:"coin_type" binding:"required,coin_type"`
	GasPayment   *GasPayment `json:"gas_payment,omitempty"`
}

// SendResponse is the response body for a submitted transfer.
type SendResponse struct {
	TxHash       string           `json:"tx_hash"`
	WithdrawalID string           `json:"withdrawal_id"`
	Receipt      *ReceiptResponse `json:"receipt,omitempty"`
}

// ReceiptResponse is the execution status of a submitted transaction.
type ReceiptResponse struct {
	TxHash        string `json:"tx_hash"`
	Status        string `json:"status"`
	BlockNumber   int64  `json:"block_number,omitempty"`
	GasUsed       int64  `json:"gas_used,omitempty"`
	Confirmations int64  `json:"confirmations,omitempty"`
}

// MoveRequest is the request body for hot/cold custody moves.
type MoveRequest struct {
	UserID   string `json:"user_id" binding:"required,uuid"`
	CoinType string `json:"coin_type" binding:"required,coin_type"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

// SettlementResponse summarizes a settlement approval run.
type SettlementResponse struct {
	RequestID     string `json:"request_id"`
	Status        string `json:"status"`
	CreditTxHash  string `json:"credit_tx_hash,omitempty"`
	ForwardTxHash string `json:"forward_tx_hash,omitempty"`
	Warning       string `json:"warning,omitempty"`
}
