package tron

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"custody-core/internal/adapter/chain/keys"
	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"
	"custody-core/internal/metrics"
	"custody-core/pkg/apperror"

	"github.com/rs/zerolog"
)

// DefaultFeeLimit is the fixed energy/bandwidth ceiling attached to
// every TRC-20 trigger, in SUN.
const DefaultFeeLimit = 100_000_000

// Adapter implements ports.ChainAdapter for Tron. There is no sponsor
// here: the adapter builds the TRC-20 transfer through the full node's
// HTTP API, signs the raw transaction locally, and broadcasts it itself.
type Adapter struct {
	endpoint   string
	feeLimit   int64
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a Tron adapter against a full-node HTTP endpoint.
func New(endpoint string, feeLimit int64, timeout time.Duration, log zerolog.Logger) *Adapter {
	if feeLimit <= 0 {
		feeLimit = DefaultFeeLimit
	}
	return &Adapter{
		endpoint:   strings.TrimRight(endpoint, "/"),
		feeLimit:   feeLimit,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Family implements ports.ChainAdapter.
func (a *Adapter) Family() domain.ChainFamily {
	return domain.ChainFamilyTron
}

// triggerResult is the unsigned transaction returned by
// wallet/triggersmartcontract. RawData is carried through to broadcast
// untouched; only RawDataHex is decoded for signing.
type triggerResult struct {
	Transaction struct {
		TxID       string          `json:"txID"`
		RawData    json.RawMessage `json:"raw_data"`
		RawDataHex string          `json:"raw_data_hex"`
	} `json:"transaction"`
}

// Transfer builds, signs, and broadcasts a TRC-20 transfer.
func (a *Adapter) Transfer(ctx context.Context, params ports.TransferParams) (string, error) {
	ownerHex, err := keys.TronAddressToHex(params.FromAddress)
	if err != nil {
		return "", apperror.ErrChainService(fmt.Errorf("from address: %w", err))
	}
	contractHex, err := keys.TronAddressToHex(params.Asset.ContractAddress)
	if err != nil {
		return "", apperror.ErrChainService(fmt.Errorf("contract address: %w", err))
	}
	parameter, err := transferParameter(params.ToAddress, params.Amount, params.Asset.Decimals)
	if err != nil {
		return "", apperror.ErrChainService(err)
	}

	var trigger triggerResult
	err = a.post(ctx, "/wallet/triggersmartcontract", map[string]any{
		"owner_address":     ownerHex,
		"contract_address":  contractHex,
		"function_selector": "transfer(address,uint256)",
		"parameter":         parameter,
		"fee_limit":         a.feeLimit,
		"call_value":        0,
	}, &trigger)
	if err != nil {
		metrics.TransferErrors.WithLabelValues("TRON", params.Asset.Symbol).Inc()
		return "", apperror.ErrComposeFailed(err)
	}
	if trigger.Transaction.TxID == "" || trigger.Transaction.RawDataHex == "" {
		metrics.TransferErrors.WithLabelValues("TRON", params.Asset.Symbol).Inc()
		return "", apperror.ErrComposeFailed(fmt.Errorf("trigger returned no transaction"))
	}

	priv, err := keys.PrivateKeyFromHex(params.PrivateKey)
	if err != nil {
		metrics.TransferErrors.WithLabelValues("TRON", params.Asset.Symbol).Inc()
		return "", apperror.ErrChainService(fmt.Errorf("load signing key: %w", err))
	}
	rawData, err := hex.DecodeString(trigger.Transaction.RawDataHex)
	if err != nil {
		metrics.TransferErrors.WithLabelValues("TRON", params.Asset.Symbol).Inc()
		return "", apperror.ErrChainService(fmt.Errorf("decode raw_data_hex: %w", err))
	}
	signature := hex.EncodeToString(keys.SignTronTx(priv, rawData))

	var broadcast struct {
		Result  bool   `json:"result"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	err = a.post(ctx, "/wallet/broadcasttransaction", map[string]any{
		"txID":         trigger.Transaction.TxID,
		"raw_data":     trigger.Transaction.RawData,
		"raw_data_hex": trigger.Transaction.RawDataHex,
		"signature":    []string{signature},
	}, &broadcast)
	if err != nil {
		metrics.TransferErrors.WithLabelValues("TRON", params.Asset.Symbol).Inc()
		return "", apperror.ErrExecuteFailed(err)
	}
	if !broadcast.Result {
		metrics.TransferErrors.WithLabelValues("TRON", params.Asset.Symbol).Inc()
		return "", apperror.ErrExecuteFailed(fmt.Errorf("broadcast rejected: %s %s", broadcast.Code, broadcast.Message))
	}

	metrics.TransfersSubmitted.WithLabelValues("TRON", params.Asset.Symbol).Inc()
	a.log.Info().
		Str("tx_id", trigger.Transaction.TxID).
		Str("coin_type", params.Asset.Symbol).
		Msg("tron transfer broadcast")
	return trigger.Transaction.TxID, nil
}

// txInfo is the subset of wallet/gettransactioninfobyid the adapter
// reads. An unmined transaction comes back as an empty object.
type txInfo struct {
	ID          string `json:"id"`
	BlockNumber int64  `json:"blockNumber"`
	Receipt     struct {
		Result           string `json:"result"`
		EnergyUsageTotal int64  `json:"energy_usage_total"`
	} `json:"receipt"`
}

// GetReceipt implements ports.ChainAdapter.
func (a *Adapter) GetReceipt(ctx context.Context, txHash string) (*domain.Receipt, error) {
	var info txInfo
	err := a.post(ctx, "/wallet/gettransactioninfobyid", map[string]string{"value": txHash}, &info)
	if err != nil {
		a.log.Warn().Err(err).Str("tx_hash", txHash).Msg("tron receipt poll failed")
		metrics.ReceiptPolls.WithLabelValues("TRON", string(domain.ReceiptStatusProcessing)).Inc()
		return &domain.Receipt{TxHash: txHash, Status: domain.ReceiptStatusProcessing}, nil
	}
	if info.ID == "" {
		metrics.ReceiptPolls.WithLabelValues("TRON", string(domain.ReceiptStatusPending)).Inc()
		return &domain.Receipt{TxHash: txHash, Status: domain.ReceiptStatusPending}, nil
	}

	receipt := &domain.Receipt{TxHash: txHash, Status: domain.ReceiptStatusFailed}
	// An empty receipt result on a mined TRC-20 trigger means success on
	// older node versions; anything explicitly non-SUCCESS is a failure.
	if info.Receipt.Result == "SUCCESS" || info.Receipt.Result == "" {
		receipt.Status = domain.ReceiptStatusCompleted
	}
	if info.BlockNumber > 0 {
		block := info.BlockNumber
		receipt.BlockNumber = &block
	}
	if info.Receipt.EnergyUsageTotal > 0 {
		gasUsed := info.Receipt.EnergyUsageTotal
		receipt.GasUsed = &gasUsed
	}

	metrics.ReceiptPolls.WithLabelValues("TRON", string(receipt.Status)).Inc()
	return receipt, nil
}

// transferParameter ABI-encodes (address, uint256) for the TRC-20
// transfer selector: the 20-byte recipient account and the base-unit
// amount, each left-padded to 32 bytes.
func transferParameter(toAddress string, amount int64, decimals int) (string, error) {
	toHex, err := keys.TronAddressToHex(toAddress)
	if err != nil {
		return "", fmt.Errorf("to address: %w", err)
	}
	// Strip the 0x41 version byte; the ABI encodes the raw account bytes.
	account := strings.TrimPrefix(toHex, "41")
	if len(account) != 40 {
		return "", fmt.Errorf("unexpected account length in %s", toHex)
	}

	scaled := new(big.Int).Mul(
		big.NewInt(amount),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil),
	)

	return pad64(account) + pad64(scaled.Text(16)), nil
}

// pad64 left-pads a hex string to one 32-byte ABI word.
func pad64(s string) string {
	if len(s) >= 64 {
		return s
	}
	return strings.Repeat("0", 64-len(s)) + s
}

func (a *Adapter) post(ctx context.Context, path string, body, out any) error {
	start := time.Now()
	metrics.RPCCallsTotal.WithLabelValues("TRON", path).Inc()

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tron call %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tron %s returned %d: %s", path, resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	metrics.RPCLatency.WithLabelValues("TRON", path).Observe(time.Since(start).Seconds())
	return nil
}
