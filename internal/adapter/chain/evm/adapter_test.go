package evm

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

type staticTokenSource struct{ token string }

func (s *staticTokenSource) GetValidToken(_ context.Context) (string, error) {
	return s.token, nil
}

func testAsset() domain.SupportedAsset {
	return domain.SupportedAsset{
		Symbol:          "KRWQ",
		ChainID:         "1001",
		ContractAddress: "0x1111111111111111111111111111111111111111",
		Decimals:        18,
		Family:          domain.ChainFamilyEVM,
	}
}

func TestAdapter_Transfer_ThreePhase(t *testing.T) {
	priv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	from := keys.EVMAddress(priv.PubKey())

	var composeBody ComposeRequest
	var executeBody map[string]string

	sponsorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/transactions/compose":
			assert.Equal(t, "Bearer test-bearer", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&composeBody))
			json.NewEncoder(w).Encode(ComposedPayload{ //nolint:errcheck
				PayloadID: "payload-1",
				Canonical: "canonical-serialization-bytes",
			})
		case "/v1/transactions/execute":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&executeBody))
			json.NewEncoder(w).Encode(map[string]string{"tx_hash": "0xabc123"}) //nolint:errcheck
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer sponsorSrv.Close()

	sponsor, err := NewSponsorClient(sponsorSrv.URL, "client-id", "client-secret", time.Second)
	require.NoError(t, err)
	adapter := New(sponsor, &staticTokenSource{token: "test-bearer"}, sponsorSrv.URL, time.Second, zerolog.Nop())

	txHash, err := adapter.Transfer(context.Background(), ports.TransferParams{
		Asset:       testAsset(),
		FromAddress: from,
		ToAddress:   "0x2222222222222222222222222222222222222222",
		Amount:      50,
		PrivateKey:  keys.PrivateKeyHex(priv),
		GasPayment:  &domain.GasPayment{Sponsor: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "0xabc123", txHash)

	// Compose carries the scaled base-unit amount and the gas decision.
	require.Len(t, composeBody.Steps, 1)
	assert.Equal(t, "50000000000000000000", composeBody.Steps[0].Amount)
	assert.Equal(t, from, composeBody.From)
	require.NotNil(t, composeBody.Gas)
	assert.True(t, composeBody.Gas.Sponsor)

	// Execute carries a 65-byte recoverable personal-sign signature.
	assert.Equal(t, "payload-1", executeBody["payload_id"])
	sig := executeBody["signature"]
	require.True(t, strings.HasPrefix(sig, "0x"))
	raw, err := hex.DecodeString(strings.TrimPrefix(sig, "0x"))
	require.NoError(t, err)
	assert.Len(t, raw, 65)
	expected := keys.SignPersonal(priv, []byte("canonical-serialization-bytes"))
	assert.Equal(t, expected, raw)
}

func TestAdapter_Transfer_ComposeFailure(t *testing.T) {
	sponsorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid chain"}`, http.StatusBadRequest)
	}))
	defer sponsorSrv.Close()

	priv, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	sponsor, err := NewSponsorClient(sponsorSrv.URL, "client-id", "client-secret", time.Second)
	require.NoError(t, err)
	adapter := New(sponsor, &staticTokenSource{token: "test-bearer"}, sponsorSrv.URL, time.Second, zerolog.Nop())

	_, err = adapter.Transfer(context.Background(), ports.TransferParams{
		Asset:      testAsset(),
		ToAddress:  "0x2222222222222222222222222222222222222222",
		Amount:     50,
		PrivateKey: keys.PrivateKeyHex(priv),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHN_002")
}

func TestSponsorClient_MissingCredentials(t *testing.T) {
	_, err := NewSponsorClient("http://sponsor", "", "", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CFG_001")
}

func TestSponsorClient_FetchToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "client_credentials", body["grant_type"])
		assert.Equal(t, "client-id", body["client_id"])
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"access_token": "fresh-token",
			"expires_in":   3600,
		})
	}))
	defer srv.Close()

	sponsor, err := NewSponsorClient(srv.URL, "client-id", "client-secret", time.Second)
	require.NoError(t, err)

	token, expiresAt, err := sponsor.FetchToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), expiresAt, 5*time.Second)
}

func rpcServer(t *testing.T, receiptResult, headResult string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.Method {
		case "eth_getTransactionReceipt":
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + receiptResult + `}`)) //nolint:errcheck
		case "eth_blockNumber":
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + headResult + `}`)) //nolint:errcheck
		default:
			t.Fatalf("unexpected rpc method %s", req.Method)
		}
	}))
}

func TestAdapter_GetReceipt_UnminedIsPending(t *testing.T) {
	srv := rpcServer(t, "null", `"0x10"`)
	defer srv.Close()

	adapter := New(nil, nil, srv.URL, time.Second, zerolog.Nop())
	receipt, err := adapter.GetReceipt(context.Background(), "0xnothere")
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusPending, receipt.Status)
}

func TestAdapter_GetReceipt_Completed(t *testing.T) {
	srv := rpcServer(t, `{"transactionHash":"0xabc","status":"0x1","blockNumber":"0x64","gasUsed":"0x5208"}`, `"0x6e"`)
	defer srv.Close()

	adapter := New(nil, nil, srv.URL, time.Second, zerolog.Nop())
	receipt, err := adapter.GetReceipt(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusCompleted, receipt.Status)
	require.NotNil(t, receipt.BlockNumber)
	assert.Equal(t, int64(100), *receipt.BlockNumber)
	require.NotNil(t, receipt.GasUsed)
	assert.Equal(t, int64(21000), *receipt.GasUsed)
	require.NotNil(t, receipt.Confirmations)
	assert.Equal(t, int64(11), *receipt.Confirmations)
}

func TestAdapter_GetReceipt_RevertedIsFailed(t *testing.T) {
	srv := rpcServer(t, `{"transactionHash":"0xabc","status":"0x0","blockNumber":"0x64","gasUsed":"0x5208"}`, `"0x64"`)
	defer srv.Close()

	adapter := New(nil, nil, srv.URL, time.Second, zerolog.Nop())
	receipt, err := adapter.GetReceipt(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusFailed, receipt.Status)
}

func TestAdapter_GetReceipt_TransportErrorIsProcessing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	adapter := New(nil, nil, srv.URL, time.Second, zerolog.Nop())
	receipt, err := adapter.GetReceipt(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusProcessing, receipt.Status)
}
