package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletType distinguishes wallets whose keys participate in automated
// signing from wallets deliberately excluded from automated flows.
type WalletType string

const (
	WalletTypeHot  WalletType = "hot"
	WalletTypeCold WalletType = "cold"
)

// WalletStatus represents the state of a custodial wallet row.
type WalletStatus string

const (
	WalletStatusActive   WalletStatus = "ACTIVE"
	WalletStatusDisabled WalletStatus = "DISABLED"
)

// Wallet is a custodial blockchain wallet: the platform holds the
// (encrypted) private key and signs on the user's behalf. One wallet
// exists per (user, asset, wallet type).
type Wallet struct {
	ID                  uuid.UUID    `json:"wallet_id"`
	UserID              uuid.UUID    `json:"user_id"`
	CoinType            string       `json:"coin_type"`
	Address             string       `json:"address"`
	EncryptedPrivateKey string       `json:"-"` // Vault envelope, never expose
	WalletType          WalletType   `json:"wallet_type"`
	Balance             int64        `json:"balance"` // Recorded ledger balance, whole token units
	Status              WalletStatus `json:"status"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// CanSend reports whether the wallet may act as a Gateway send source.
// Cold wallets can only receive.
func (w *Wallet) CanSend() bool {
	return w.WalletType == WalletTypeHot && w.Status == WalletStatusActive
}
