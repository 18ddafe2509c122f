package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"custody-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DepositRepo implements ports.DepositRepository.
type DepositRepo struct {
	pool Pool
}

// NewDepositRepo creates a new DepositRepo.
func NewDepositRepo(pool Pool) *DepositRepo {
	return &DepositRepo{pool: pool}
}

// Create inserts a deposit row inside a transaction.
func (r *DepositRepo) Create(ctx context.Context, tx pgx.Tx, d *domain.Deposit) error {
	query := `INSERT INTO deposits (id, wallet_id, tx_hash, amount, confirmations, required_confirmations, status, from_address, method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		d.ID, d.WalletID, d.TxHash, d.Amount, d.Confirmations,
		d.RequiredConfirmations, d.Status, d.FromAddress, d.Method,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}

// GetByTxHash fetches a deposit by its chain transaction hash.
func (r *DepositRepo) GetByTxHash(ctx context.Context, txHash string) (*domain.Deposit, error) {
	query := `SELECT id, wallet_id, tx_hash, amount, confirmations, required_confirmations, status, from_address, method, created_at, updated_at
		FROM deposits WHERE tx_hash = $1`

	d := &domain.Deposit{}
	err := r.pool.QueryRow(ctx, query, txHash).Scan(
		&d.ID, &d.WalletID, &d.TxHash, &d.Amount, &d.Confirmations,
		&d.RequiredConfirmations, &d.Status, &d.FromAddress, &d.Method,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deposit by tx hash: %w", err)
	}
	return d, nil
}

// UpdateStatus transitions a deposit's status and confirmation count.
func (r *DepositRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DepositStatus, confirmations int) error {
	query := `UPDATE deposits SET status = $1, confirmations = $2, updated_at = $3 WHERE id = $4`

	_, err := r.pool.Exec(ctx, query, status, confirmations, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update deposit status: %w", err)
	}
	return nil
}
