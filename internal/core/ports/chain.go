package ports

import (
	"context"
	"time"

	"custody-core/internal/core/domain"
)

// TransferParams carries everything a chain adapter needs to submit a
// TRC-20 / ERC-20 transfer. PrivateKey is the decrypted signing key; it
// exists only for the duration of the call and is never persisted.
type TransferParams struct {
	Asset       domain.SupportedAsset
	FromAddress string
	ToAddress   string
	Amount      int64 // Whole token units; adapters scale by Asset.Decimals
	PrivateKey  string
	GasPayment  *domain.GasPayment // EVM only; nil = user pays
}

// ChainAdapter submits transfers and polls receipts for one chain family.
type ChainAdapter interface {
	Family() domain.ChainFamily
	// Transfer signs and submits a transfer, returning the transaction hash.
	Transfer(ctx context.Context, params TransferParams) (string, error)
	// GetReceipt polls the execution status of a submitted transaction.
	// A missing receipt yields status "pending"; transient transport
	// failures yield status "processing", never an error.
	GetReceipt(ctx context.Context, txHash string) (*domain.Receipt, error)
}

// AdapterRegistry resolves the chain adapter for an asset's family.
type AdapterRegistry interface {
	ForFamily(family domain.ChainFamily) (ChainAdapter, error)
}

// SponsorTokenSource yields a valid bearer token for the external
// sponsor/composition service.
type SponsorTokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
}

// SponsorAuthClient exchanges client credentials for a fresh bearer
// token at the sponsor service's OAuth endpoint.
type SponsorAuthClient interface {
	FetchToken(ctx context.Context) (token string, expiresAt time.Time, err error)
}
