package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type provisionerTestDeps struct {
	svc        *ProvisionerServiceImpl
	walletRepo *mocks.MockWalletRepository
	assetRepo  *mocks.MockAssetRepository
	vault      *mocks.MockKeyVault
	ctrl       *gomock.Controller
}

func setupProvisioner(t *testing.T) *provisionerTestDeps {
	ctrl := gomock.NewController(t)
	d := &provisionerTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		assetRepo:  mocks.NewMockAssetRepository(ctrl),
		vault:      mocks.NewMockKeyVault(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewProvisionerService(d.walletRepo, d.assetRepo, d.vault, zerolog.Nop())
	return d
}

func evmAsset(symbol string) *domain.SupportedAsset {
	a := domain.SupportedAsset{
		Symbol:   symbol,
		ChainID:  "1",
		Network:  "https://mainnet.infura.io/v3/key",
		Decimals: 18,
	}.WithResolvedFamily()
	return &a
}

func tronAsset(symbol string) *domain.SupportedAsset {
	a := domain.SupportedAsset{
		Symbol:   symbol,
		ChainID:  "728126428",
		Network:  "https://api.trongrid.io",
		Decimals: 6,
	}.WithResolvedFamily()
	return &a
}

func TestProvisioner_EVMAddressFormat(t *testing.T) {
	d := setupProvisioner(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.assetRepo.EXPECT().GetBySymbol(ctx, "KRWQ").Return(evmAsset("KRWQ"), nil)
	d.walletRepo.EXPECT().GetByUser(ctx, userID, "KRWQ", domain.WalletTypeHot).Return(nil, nil)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("envelope", nil)

	var created *domain.Wallet
	d.walletRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, w *domain.Wallet) error {
			created = w
			return nil
		})

	wallet, err := d.svc.Provision(ctx, userID, "KRWQ", domain.WalletTypeHot)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.True(t, strings.HasPrefix(wallet.Address, "0x"))
	assert.Len(t, wallet.Address, 42)
	assert.Equal(t, "envelope", created.EncryptedPrivateKey)
	assert.Equal(t, int64(0), created.Balance)
	assert.Equal(t, domain.WalletStatusActive, created.Status)
}

func TestProvisioner_TronAddressFormat(t *testing.T) {
	d := setupProvisioner(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.assetRepo.EXPECT().GetBySymbol(ctx, "USDT").Return(tronAsset("USDT"), nil)
	d.walletRepo.EXPECT().GetByUser(ctx, userID, "USDT", domain.WalletTypeHot).Return(nil, nil)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("envelope", nil)
	d.walletRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	wallet, err := d.svc.Provision(ctx, userID, "USDT", domain.WalletTypeHot)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wallet.Address, "T"), "tron address must use the 0x41 base58check form, got %s", wallet.Address)
}

func TestProvisioner_UnknownFamilyFallsBackToEVM(t *testing.T) {
	d := setupProvisioner(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	// Family tag left empty simulates a row loaded without resolution.
	asset := &domain.SupportedAsset{Symbol: "XYZ", Network: "", Family: ""}
	d.assetRepo.EXPECT().GetBySymbol(ctx, "XYZ").Return(asset, nil)
	d.walletRepo.EXPECT().GetByUser(ctx, userID, "XYZ", domain.WalletTypeHot).Return(nil, nil)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("envelope", nil)
	d.walletRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	wallet, err := d.svc.Provision(ctx, userID, "XYZ", domain.WalletTypeHot)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wallet.Address, "0x"))
}

func TestProvisioner_UnsupportedAsset(t *testing.T) {
	d := setupProvisioner(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.assetRepo.EXPECT().GetBySymbol(ctx, "DOGE").Return(nil, nil)

	_, err := d.svc.Provision(ctx, uuid.New(), "DOGE", domain.WalletTypeHot)
	require.Error(t, err)
	assertAppError(t, err, "CFG_003")
}

func TestProvisioner_Idempotent(t *testing.T) {
	d := setupProvisioner(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	existing := &domain.Wallet{ID: uuid.New(), UserID: userID, CoinType: "KRWQ", Address: "0xabc"}

	d.assetRepo.EXPECT().GetBySymbol(ctx, "KRWQ").Return(evmAsset("KRWQ"), nil)
	d.walletRepo.EXPECT().GetByUser(ctx, userID, "KRWQ", domain.WalletTypeHot).Return(existing, nil)

	wallet, err := d.svc.Provision(ctx, userID, "KRWQ", domain.WalletTypeHot)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, wallet.ID)
}

func TestProvisioner_VaultFailureDoesNotPersist(t *testing.T) {
	d := setupProvisioner(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.assetRepo.EXPECT().GetBySymbol(ctx, "KRWQ").Return(evmAsset("KRWQ"), nil)
	d.walletRepo.EXPECT().GetByUser(ctx, userID, "KRWQ", domain.WalletTypeHot).Return(nil, nil)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("", fmt.Errorf("gcm failure"))
	// No Create expectation: the wallet must not be persisted.

	_, err := d.svc.Provision(ctx, userID, "KRWQ", domain.WalletTypeHot)
	require.Error(t, err)
	assertAppError(t, err, "ENC_002")
}

func TestProvisioner_BatchPartialFailure(t *testing.T) {
	d := setupProvisioner(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	// First asset succeeds.
	d.assetRepo.EXPECT().GetBySymbol(ctx, "KRWQ").Return(evmAsset("KRWQ"), nil)
	d.walletRepo.EXPECT().GetByUser(ctx, userID, "KRWQ", domain.WalletTypeHot).Return(nil, nil)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("envelope", nil)
	d.walletRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	// Second asset is unknown.
	d.assetRepo.EXPECT().GetBySymbol(ctx, "NOPE").Return(nil, nil)

	// Third asset succeeds despite the second failing.
	d.assetRepo.EXPECT().GetBySymbol(ctx, "USDT").Return(tronAsset("USDT"), nil)
	d.walletRepo.EXPECT().GetByUser(ctx, userID, "USDT", domain.WalletTypeHot).Return(nil, nil)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("envelope", nil)
	d.walletRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	results := d.svc.ProvisionBatch(ctx, userID, []string{"KRWQ", "NOPE", "USDT"})
	require.Len(t, results, 3)

	assert.Empty(t, results[0].Err)
	assert.NotEmpty(t, results[0].Address)

	assert.NotEmpty(t, results[1].Err, "failed asset must carry its error for selective retry")
	assert.Empty(t, results[1].Address)

	assert.Empty(t, results[2].Err)
	assert.NotEmpty(t, results[2].Address)
}
