package postgres

import (
	"context"
	"errors"
	"fmt"

	"custody-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// GasPolicyRepo implements ports.GasPolicyRepository. Policy rows are
// managed externally; this side only reads them.
type GasPolicyRepo struct {
	pool Pool
}

// NewGasPolicyRepo creates a new GasPolicyRepo.
func NewGasPolicyRepo(pool Pool) *GasPolicyRepo {
	return &GasPolicyRepo{pool: pool}
}

// GetByTier fetches the sponsorship policy for one user tier.
func (r *GasPolicyRepo) GetByTier(ctx context.Context, tier domain.UserTier) (*domain.GasPolicy, error) {
	query := `SELECT tier, sponsor, token, max_user_payment FROM gas_policies WHERE tier = $1`

	p := &domain.GasPolicy{}
	err := r.pool.QueryRow(ctx, query, tier).Scan(&p.Tier, &p.Sponsor, &p.Token, &p.MaxUserPayment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gas policy by tier: %w", err)
	}
	return p, nil
}
