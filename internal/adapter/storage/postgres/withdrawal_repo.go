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

// WithdrawalRepo implements ports.WithdrawalRepository.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

// Create inserts a withdrawal row inside a transaction.
func (r *WithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error {
	query := `INSERT INTO withdrawals (id, wallet_id, to_address, amount, fee, tx_hash, status, method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.WalletID, w.ToAddress, w.Amount, w.Fee,
		w.TxHash, w.Status, w.Method, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// GetByTxHash fetches a withdrawal by its chain transaction hash.
func (r *WithdrawalRepo) GetByTxHash(ctx context.Context, txHash string) (*domain.Withdrawal, error) {
	query := `SELECT id, wallet_id, to_address, amount, fee, tx_hash, status, method, created_at, updated_at
		FROM withdrawals WHERE tx_hash = $1`

	w := &domain.Withdrawal{}
	err := r.pool.QueryRow(ctx, query, txHash).Scan(
		&w.ID, &w.WalletID, &w.ToAddress, &w.Amount, &w.Fee,
		&w.TxHash, &w.Status, &w.Method, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal by tx hash: %w", err)
	}
	return w, nil
}

// UpdateStatus transitions a withdrawal's status.
func (r *WithdrawalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.WithdrawalStatus) error {
	query := `UPDATE withdrawals SET status = $1, updated_at = $2 WHERE id = $3`

	_, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update withdrawal status: %w", err)
	}
	return nil
}
