package postgres

import (
	"context"
	"errors"
	"fmt"

	"custody-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AssetRepo implements ports.AssetRepository. Every row read through
// here comes back with its chain family tag already resolved from the
// configured RPC endpoint.
type AssetRepo struct {
	pool Pool
}

// NewAssetRepo creates a new AssetRepo.
func NewAssetRepo(pool Pool) *AssetRepo {
	return &AssetRepo{pool: pool}
}

// GetBySymbol fetches one supported asset.
func (r *AssetRepo) GetBySymbol(ctx context.Context, symbol string) (*domain.SupportedAsset, error) {
	query := `SELECT symbol, chain_id, network, contract_address, decimals
		FROM supported_assets WHERE symbol = $1`

	a := domain.SupportedAsset{}
	err := r.pool.QueryRow(ctx, query, symbol).Scan(
		&a.Symbol, &a.ChainID, &a.Network, &a.ContractAddress, &a.Decimals,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset by symbol: %w", err)
	}
	a = a.WithResolvedFamily()
	return &a, nil
}

// List fetches all supported assets.
func (r *AssetRepo) List(ctx context.Context) ([]domain.SupportedAsset, error) {
	query := `SELECT symbol, chain_id, network, contract_address, decimals
		FROM supported_assets ORDER BY symbol`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.SupportedAsset
	for rows.Next() {
		a := domain.SupportedAsset{}
		if err := rows.Scan(&a.Symbol, &a.ChainID, &a.Network, &a.ContractAddress, &a.Decimals); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, a.WithResolvedFamily())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}
