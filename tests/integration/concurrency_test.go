package integration

import (
	"net/http"
	"sync"
	"testing"

	"custody-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Concurrent admin decisions on one request: the row lock serializes the
// racers and the status gate turns the loser away. Exactly one approval
// reaches the chain.
func TestConcurrentApprovals_ExactlyOneWins(t *testing.T) {
	app := newTestApp(t)

	merchantID := uuid.New()
	userID := uuid.New()
	app.userRepo.users[merchantID] = &domain.User{ID: merchantID, Tier: domain.TierBasic}
	app.userRepo.users[userID] = &domain.User{ID: userID, MerchantID: &merchantID, Tier: domain.TierBasic}

	app.seedWallet(t, app.treasuryUserID, evmAssetSymbol, domain.WalletTypeHot, 1000)
	userWallet := app.seedWallet(t, userID, evmAssetSymbol, domain.WalletTypeHot, 0)
	app.seedWallet(t, merchantID, evmAssetSymbol, domain.WalletTypeHot, 0)

	reqID := uuid.New()
	app.requestRepo.requests[reqID] = &domain.TransferRequest{
		ID: reqID, UserID: userID, CoinType: evmAssetSymbol, Amount: 50,
		Status: domain.TransferRequestPending,
	}

	token := app.serviceToken(t)
	const racers = 4
	statuses := make([]int, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, _ := app.do(t, http.MethodPost, "/api/v1/settlement/"+reqID.String()+"/approve", nil, token)
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, code := range statuses {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflict++
		}
	}
	assert.Equal(t, 1, ok, "exactly one approval must win")
	assert.Equal(t, racers-1, conflict)

	// Ledger settled exactly once.
	assert.Equal(t, 2, app.evmAdapter.transferCount())
	uw, err := app.walletRepo.GetByID(t.Context(), userWallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), uw.Balance)
	require.Len(t, app.depositRepo.all(), 1)
}

// Concurrent sends against one wallet: row locking makes the debits
// sequential, so the recorded balance never loses an update.
func TestConcurrentSends_SerializedDebits(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()
	hot := app.seedWallet(t, userID, evmAssetSymbol, domain.WalletTypeHot, 100)

	const senders = 5
	var wg sync.WaitGroup
	codes := make([]int, senders)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, _ := app.do(t, http.MethodPost, "/api/v1/transaction/send", map[string]interface{}{
				"from_wallet_id": hot.ID.String(),
				"to_address":     "0x52908400098527886E0F7030069857D2E4169EE7",
				"amount":         30,
				"coin_type":      evmAssetSymbol,
			}, "")
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	var created, rejected int
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusPaymentRequired:
			rejected++
		}
	}

	// 100 units funds exactly three 30-unit sends.
	assert.Equal(t, 3, created)
	assert.Equal(t, senders-3, rejected)
	assert.Equal(t, 3, app.evmAdapter.transferCount())

	w, err := app.walletRepo.GetByID(t.Context(), hot.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), w.Balance)
}
