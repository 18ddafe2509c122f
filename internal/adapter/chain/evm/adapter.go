package evm

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"custody-core/internal/adapter/chain/keys"
	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"
	"custody-core/internal/metrics"
	"custody-core/pkg/apperror"

	"github.com/rs/zerolog"
)

// Adapter implements ports.ChainAdapter for EVM-compatible chains via
// the sponsor's three-phase protocol: compose an unsigned payload, sign
// its canonical serialization off-chain with the wallet key, then hand
// payload+signature back for on-chain submission. Receipts are polled
// directly from the chain's JSON-RPC endpoint.
type Adapter struct {
	sponsor *SponsorClient
	tokens  ports.SponsorTokenSource
	rpc     *rpcClient
	log     zerolog.Logger
}

// New creates an EVM adapter polling receipts from rpcEndpoint.
func New(sponsor *SponsorClient, tokens ports.SponsorTokenSource, rpcEndpoint string, timeout time.Duration, log zerolog.Logger) *Adapter {
	return &Adapter{
		sponsor: sponsor,
		tokens:  tokens,
		rpc:     newRPCClient(rpcEndpoint, timeout),
		log:     log,
	}
}

// Family implements ports.ChainAdapter.
func (a *Adapter) Family() domain.ChainFamily {
	return domain.ChainFamilyEVM
}

// Transfer runs compose -> sign -> execute. The sponsor broadcasts the
// transaction itself; the wallet key only produces the off-chain
// authorization signature and is discarded afterward.
func (a *Adapter) Transfer(ctx context.Context, params ports.TransferParams) (string, error) {
	bearer, err := a.tokens.GetValidToken(ctx)
	if err != nil {
		metrics.TransferErrors.WithLabelValues("EVM", params.Asset.Symbol).Inc()
		return "", apperror.ErrChainService(fmt.Errorf("sponsor token: %w", err))
	}

	payload, err := a.sponsor.Compose(ctx, bearer, ComposeRequest{
		ChainID: params.Asset.ChainID,
		From:    params.FromAddress,
		Steps: []TransferStep{{
			Type:   "transfer",
			Token:  params.Asset.ContractAddress,
			To:     params.ToAddress,
			Amount: baseUnits(params.Amount, params.Asset.Decimals),
		}},
		Gas: params.GasPayment,
	})
	if err != nil {
		metrics.TransferErrors.WithLabelValues("EVM", params.Asset.Symbol).Inc()
		return "", err
	}

	priv, err := keys.PrivateKeyFromHex(params.PrivateKey)
	if err != nil {
		metrics.TransferErrors.WithLabelValues("EVM", params.Asset.Symbol).Inc()
		return "", apperror.ErrChainService(fmt.Errorf("load signing key: %w", err))
	}
	signature := "0x" + hex.EncodeToString(keys.SignPersonal(priv, []byte(payload.Canonical)))

	txHash, err := a.sponsor.Execute(ctx, bearer, payload.PayloadID, signature)
	if err != nil {
		metrics.TransferErrors.WithLabelValues("EVM", params.Asset.Symbol).Inc()
		return "", err
	}

	metrics.TransfersSubmitted.WithLabelValues("EVM", params.Asset.Symbol).Inc()
	a.log.Info().
		Str("tx_hash", txHash).
		Str("payload_id", payload.PayloadID).
		Str("coin_type", params.Asset.Symbol).
		Msg("evm transfer executed via sponsor")
	return txHash, nil
}

// GetReceipt implements ports.ChainAdapter. An unmined hash is
// "pending"; a transport failure degrades to "processing" so repeated
// polling can recover.
func (a *Adapter) GetReceipt(ctx context.Context, txHash string) (*domain.Receipt, error) {
	raw, err := a.rpc.transactionReceipt(ctx, txHash)
	if err != nil {
		a.log.Warn().Err(err).Str("tx_hash", txHash).Msg("evm receipt poll failed")
		metrics.ReceiptPolls.WithLabelValues("EVM", string(domain.ReceiptStatusProcessing)).Inc()
		return &domain.Receipt{TxHash: txHash, Status: domain.ReceiptStatusProcessing}, nil
	}
	if raw == nil {
		metrics.ReceiptPolls.WithLabelValues("EVM", string(domain.ReceiptStatusPending)).Inc()
		return &domain.Receipt{TxHash: txHash, Status: domain.ReceiptStatusPending}, nil
	}

	receipt := &domain.Receipt{TxHash: txHash, Status: domain.ReceiptStatusFailed}
	if raw.Status == "0x1" {
		receipt.Status = domain.ReceiptStatusCompleted
	}
	if block, err := parseHexInt64(raw.BlockNumber); err == nil {
		receipt.BlockNumber = &block
		if head, err := a.rpc.blockNumber(ctx); err == nil && head >= block {
			confirmations := head - block + 1
			receipt.Confirmations = &confirmations
		}
	}
	if gasUsed, err := parseHexInt64(raw.GasUsed); err == nil {
		receipt.GasUsed = &gasUsed
	}

	metrics.ReceiptPolls.WithLabelValues("EVM", string(receipt.Status)).Inc()
	return receipt, nil
}

// baseUnits scales a whole-token amount by the asset's decimals into a
// base-unit decimal string. int64 would overflow at 18 decimals, so the
// scaling runs through big.Int.
func baseUnits(amount int64, decimals int) string {
	scaled := new(big.Int).Mul(
		big.NewInt(amount),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil),
	)
	return scaled.String()
}
