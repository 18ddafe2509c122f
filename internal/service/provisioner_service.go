package service

import (
	"context"
	"fmt"
	"time"

	"custody-core/internal/adapter/chain/keys"
	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"
	"custody-core/pkg/apperror"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProvisionerServiceImpl implements ports.ProvisionerService. It derives a
// keypair and chain address for an asset, hands the key to the Vault and
// persists only the envelope.
type ProvisionerServiceImpl struct {
	walletRepo ports.WalletRepository
	assetRepo  ports.AssetRepository
	vault      ports.KeyVault
	log        zerolog.Logger
}

// NewProvisionerService creates a new ProvisionerServiceImpl.
func NewProvisionerService(
	walletRepo ports.WalletRepository,
	assetRepo ports.AssetRepository,
	vault ports.KeyVault,
	log zerolog.Logger,
) *ProvisionerServiceImpl {
	return &ProvisionerServiceImpl{
		walletRepo: walletRepo,
		assetRepo:  assetRepo,
		vault:      vault,
		log:        log,
	}
}

// Provision creates (or returns) the user's wallet for one asset.
func (s *ProvisionerServiceImpl) Provision(ctx context.Context, userID uuid.UUID, symbol string, walletType domain.WalletType) (*domain.Wallet, error) {
	asset, err := s.assetRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load asset %s: %w", symbol, err))
	}
	if asset == nil {
		return nil, apperror.ErrUnsupportedAsset(symbol)
	}

	// One wallet per (user, asset, wallet type); provisioning is idempotent.
	existing, err := s.walletRepo.GetByUser(ctx, userID, symbol, walletType)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check existing wallet: %w", err))
	}
	if existing != nil {
		return existing, nil
	}

	priv, err := keys.GenerateKeyPair()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("derive keypair: %w", err))
	}

	address := s.deriveAddress(priv, asset)

	envelope, err := s.vault.Encrypt(keys.PrivateKeyHex(priv))
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:                  uuid.New(),
		UserID:              userID,
		CoinType:            symbol,
		Address:             address,
		EncryptedPrivateKey: envelope,
		WalletType:          walletType,
		Balance:             0,
		Status:              domain.WalletStatusActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("persist wallet: %w", err))
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("coin_type", symbol).
		Str("wallet_type", string(walletType)).
		Str("address", address).
		Msg("wallet provisioned")

	return wallet, nil
}

// deriveAddress picks the address format for the asset's chain family.
// Rather than leaving the asset unprovisioned on an unrecognized family,
// derivation falls back to the EVM path with a logged warning.
func (s *ProvisionerServiceImpl) deriveAddress(priv *btcec.PrivateKey, asset *domain.SupportedAsset) string {
	switch asset.Family {
	case domain.ChainFamilyTron:
		return keys.TronAddress(priv.PubKey())
	case domain.ChainFamilyEVM:
		return keys.EVMAddress(priv.PubKey())
	default:
		s.log.Warn().
			Str("coin_type", asset.Symbol).
			Str("family", string(asset.Family)).
			Msg("unknown chain family, falling back to EVM address derivation")
		return keys.EVMAddress(priv.PubKey())
	}
}

// ProvisionBatch attempts each asset independently so one failure never
// aborts the others.
func (s *ProvisionerServiceImpl) ProvisionBatch(ctx context.Context, userID uuid.UUID, symbols []string) []ports.ProvisionResult {
	results := make([]ports.ProvisionResult, 0, len(symbols))
	for _, symbol := range symbols {
		wallet, err := s.Provision(ctx, userID, symbol, domain.WalletTypeHot)
		if err != nil {
			s.log.Warn().Err(err).
				Str("user_id", userID.String()).
				Str("coin_type", symbol).
				Msg("batch provisioning: asset failed, continuing")
			results = append(results, ports.ProvisionResult{Symbol: symbol, Err: err.Error()})
			continue
		}
		results = append(results, ports.ProvisionResult{
			Symbol:   symbol,
			WalletID: wallet.ID,
			Address:  wallet.Address,
		})
	}
	return results
}
