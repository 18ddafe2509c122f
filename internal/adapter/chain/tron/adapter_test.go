package tron

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"custody-core/internal/adapter/chain/keys"
	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trc20Asset(contract string) domain.SupportedAsset {
	return domain.SupportedAsset{
		Symbol:          "USDT",
		ChainID:         "tron-nile",
		ContractAddress: contract,
		Decimals:        6,
		Family:          domain.ChainFamilyTron,
	}
}

func TestTransferParameter(t *testing.T) {
	priv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	to := keys.TronAddress(priv.PubKey())

	param, err := transferParameter(to, 50, 6)
	require.NoError(t, err)
	require.Len(t, param, 128)

	toHex, err := keys.TronAddressToHex(to)
	require.NoError(t, err)
	account := strings.TrimPrefix(toHex, "41")
	assert.Equal(t, "000000000000000000000000"+account, param[:64])
	// 50 * 10^6 = 50000000 = 0x2faf080
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000002faf080", param[64:])
}

func TestTransferParameter_RejectsMalformedAddress(t *testing.T) {
	_, err := transferParameter("not-a-tron-address", 50, 6)
	require.Error(t, err)
}

func TestAdapter_Transfer_TriggerSignBroadcast(t *testing.T) {
	priv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	from := keys.TronAddress(priv.PubKey())

	contractPriv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	contract := keys.TronAddress(contractPriv.PubKey())
	toPriv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	to := keys.TronAddress(toPriv.PubKey())

	rawDataHex := hex.EncodeToString([]byte("serialized-raw-transaction"))
	var triggerBody map[string]any
	var broadcastBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wallet/triggersmartcontract":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&triggerBody))
			w.Write([]byte(`{"transaction":{"txID":"deadbeef01","raw_data":{"contract":[]},"raw_data_hex":"` + rawDataHex + `"}}`)) //nolint:errcheck
		case "/wallet/broadcasttransaction":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&broadcastBody))
			w.Write([]byte(`{"result":true}`)) //nolint:errcheck
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	adapter := New(srv.URL, 0, time.Second, zerolog.Nop())
	txHash, err := adapter.Transfer(context.Background(), ports.TransferParams{
		Asset:       trc20Asset(contract),
		FromAddress: from,
		ToAddress:   to,
		Amount:      50,
		PrivateKey:  keys.PrivateKeyHex(priv),
	})
	require.NoError(t, err)
	assert.Equal(t, "deadbeef01", txHash)

	// Trigger carries the hex owner/contract, the TRC-20 selector, the
	// ABI-encoded parameter, and the fixed fee ceiling.
	fromHex, err := keys.TronAddressToHex(from)
	require.NoError(t, err)
	assert.Equal(t, fromHex, triggerBody["owner_address"])
	assert.Equal(t, "transfer(address,uint256)", triggerBody["function_selector"])
	assert.Equal(t, float64(DefaultFeeLimit), triggerBody["fee_limit"])
	param, _ := triggerBody["parameter"].(string)
	assert.Len(t, param, 128)

	// Broadcast carries the untouched raw_data and a raw-tx signature
	// that recovers to the sender's key.
	assert.Equal(t, "deadbeef01", broadcastBody["txID"])
	sigs, ok := broadcastBody["signature"].([]any)
	require.True(t, ok)
	require.Len(t, sigs, 1)
	rawData, err := hex.DecodeString(rawDataHex)
	require.NoError(t, err)
	expected := hex.EncodeToString(keys.SignTronTx(priv, rawData))
	assert.Equal(t, expected, sigs[0])
}

func TestAdapter_Transfer_BroadcastRejected(t *testing.T) {
	priv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	from := keys.TronAddress(priv.PubKey())
	contract := keys.TronAddress(priv.PubKey())

	rawDataHex := hex.EncodeToString([]byte("raw"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wallet/triggersmartcontract":
			w.Write([]byte(`{"transaction":{"txID":"deadbeef02","raw_data":{},"raw_data_hex":"` + rawDataHex + `"}}`)) //nolint:errcheck
		case "/wallet/broadcasttransaction":
			w.Write([]byte(`{"result":false,"code":"BANDWITH_ERROR","message":"6e6f2062616e647769647468"}`)) //nolint:errcheck
		}
	}))
	defer srv.Close()

	adapter := New(srv.URL, 0, time.Second, zerolog.Nop())
	_, err = adapter.Transfer(context.Background(), ports.TransferParams{
		Asset:       trc20Asset(contract),
		FromAddress: from,
		ToAddress:   from,
		Amount:      5,
		PrivateKey:  keys.PrivateKeyHex(priv),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHN_003")
}

func TestAdapter_GetReceipt_UnminedIsPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	adapter := New(srv.URL, 0, time.Second, zerolog.Nop())
	receipt, err := adapter.GetReceipt(context.Background(), "deadbeef03")
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusPending, receipt.Status)
}

func TestAdapter_GetReceipt_Completed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"deadbeef04","blockNumber":4200,"receipt":{"result":"SUCCESS","energy_usage_total":13000}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	adapter := New(srv.URL, 0, time.Second, zerolog.Nop())
	receipt, err := adapter.GetReceipt(context.Background(), "deadbeef04")
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusCompleted, receipt.Status)
	require.NotNil(t, receipt.BlockNumber)
	assert.Equal(t, int64(4200), *receipt.BlockNumber)
	require.NotNil(t, receipt.GasUsed)
	assert.Equal(t, int64(13000), *receipt.GasUsed)
}

func TestAdapter_GetReceipt_RevertedIsFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"deadbeef05","blockNumber":4201,"receipt":{"result":"OUT_OF_ENERGY"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	adapter := New(srv.URL, 0, time.Second, zerolog.Nop())
	receipt, err := adapter.GetReceipt(context.Background(), "deadbeef05")
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusFailed, receipt.Status)
}

func TestAdapter_GetReceipt_TransportErrorIsProcessing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	adapter := New(srv.URL, 0, time.Second, zerolog.Nop())
	receipt, err := adapter.GetReceipt(context.Background(), "deadbeef06")
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusProcessing, receipt.Status)
}
