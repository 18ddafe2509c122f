package evm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"custody-core/internal/core/domain"
	"custody-core/internal/metrics"
	"custody-core/pkg/apperror"
)

// SponsorClient talks to the external sponsor/composition service: it
// assembles the multi-step transaction, accepts the wallet's off-chain
// authorization signature, and submits/pays for it on-chain itself.
type SponsorClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// NewSponsorClient creates a new SponsorClient. Credentials are required;
// a missing pair is a configuration error surfaced at startup, never
// silently defaulted.
func NewSponsorClient(baseURL, clientID, clientSecret string, timeout time.Duration) (*SponsorClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, apperror.ErrMissingSponsorCredentials()
	}
	return &SponsorClient{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: timeout},
	}, nil
}

// FetchToken exchanges client credentials for a fresh bearer token.
// Implements ports.SponsorAuthClient.
func (c *SponsorClient) FetchToken(ctx context.Context) (string, time.Time, error) {
	body := map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := c.post(ctx, "/oauth/token", "", body, &resp); err != nil {
		return "", time.Time{}, fmt.Errorf("sponsor token exchange: %w", err)
	}
	if resp.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("sponsor token exchange: empty access_token")
	}

	metrics.SponsorTokenRefreshes.Inc()
	return resp.AccessToken, time.Now().UTC().Add(time.Duration(resp.ExpiresIn) * time.Second), nil
}

// ComposeRequest describes the transfer the sponsor should assemble.
type ComposeRequest struct {
	ChainID string             `json:"chain_id"`
	From    string             `json:"from"`
	Steps   []TransferStep     `json:"steps"`
	Gas     *domain.GasPayment `json:"gas_payment,omitempty"`
}

// TransferStep is one token movement inside a composed transaction.
type TransferStep struct {
	Type   string `json:"type"` // "transfer"
	Token  string `json:"token"`
	To     string `json:"to"`
	Amount string `json:"amount"` // Base units, decimal string
}

// ComposedPayload is the sponsor's unsigned payload. Canonical is the
// exact byte string the wallet must sign off-chain.
type ComposedPayload struct {
	PayloadID string `json:"payload_id"`
	Canonical string `json:"canonical"`
}

// Compose submits the transfer plan and returns the unsigned payload.
func (c *SponsorClient) Compose(ctx context.Context, bearer string, req ComposeRequest) (*ComposedPayload, error) {
	var payload ComposedPayload
	if err := c.post(ctx, "/v1/transactions/compose", bearer, req, &payload); err != nil {
		return nil, apperror.ErrComposeFailed(err)
	}
	if payload.PayloadID == "" || payload.Canonical == "" {
		return nil, apperror.ErrComposeFailed(fmt.Errorf("incomplete compose response"))
	}
	return &payload, nil
}

// Execute submits the signed payload; the sponsor broadcasts the
// transaction on-chain and returns its hash.
func (c *SponsorClient) Execute(ctx context.Context, bearer, payloadID, signature string) (string, error) {
	body := map[string]string{
		"payload_id": payloadID,
		"signature":  signature,
	}

	var resp struct {
		TxHash string `json:"tx_hash"`
	}
	if err := c.post(ctx, "/v1/transactions/execute", bearer, body, &resp); err != nil {
		return "", apperror.ErrExecuteFailed(err)
	}
	if resp.TxHash == "" {
		return "", apperror.ErrExecuteFailed(fmt.Errorf("execute response missing tx_hash"))
	}
	return resp.TxHash, nil
}

func (c *SponsorClient) post(ctx context.Context, path, bearer string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sponsor call %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sponsor %s returned %d: %s", path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
