package postgres

import (
	"context"
	"errors"
	"fmt"

	"custody-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// SponsorTokenRepo implements ports.SponsorTokenRepository. The table
// holds a single row: the process-wide sponsor bearer token and its
// expiry, persisted so restarts do not force a refresh.
type SponsorTokenRepo struct {
	pool Pool
}

// NewSponsorTokenRepo creates a new SponsorTokenRepo.
func NewSponsorTokenRepo(pool Pool) *SponsorTokenRepo {
	return &SponsorTokenRepo{pool: pool}
}

// Get fetches the cached token, or nil when none was ever persisted.
func (r *SponsorTokenRepo) Get(ctx context.Context) (*domain.SponsorToken, error) {
	query := `SELECT token, expires_at, updated_at FROM sponsor_token WHERE id = 1`

	t := &domain.SponsorToken{}
	err := r.pool.QueryRow(ctx, query).Scan(&t.Token, &t.ExpiresAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sponsor token: %w", err)
	}
	return t, nil
}

// Upsert replaces the cached token.
func (r *SponsorTokenRepo) Upsert(ctx context.Context, t *domain.SponsorToken) error {
	query := `INSERT INTO sponsor_token (id, token, expires_at, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET token = $1, expires_at = $2, updated_at = $3`

	_, err := r.pool.Exec(ctx, query, t.Token, t.ExpiresAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert sponsor token: %w", err)
	}
	return nil
}
