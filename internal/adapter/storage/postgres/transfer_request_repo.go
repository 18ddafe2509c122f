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

const transferRequestColumns = `id, user_id, coin_type, amount, status, step, tx_hash, created_at, updated_at`

// TransferRequestRepo implements ports.TransferRequestRepository.
type TransferRequestRepo struct {
	pool Pool
}

// NewTransferRequestRepo creates a new TransferRequestRepo.
func NewTransferRequestRepo(pool Pool) *TransferRequestRepo {
	return &TransferRequestRepo{pool: pool}
}

func scanTransferRequest(row pgx.Row) (*domain.TransferRequest, error) {
	req := &domain.TransferRequest{}
	err := row.Scan(
		&req.ID, &req.UserID, &req.CoinType, &req.Amount,
		&req.Status, &req.Step, &req.TxHash, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

// GetByID fetches a transfer request (non-locking read).
func (r *TransferRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferRequest, error) {
	query := `SELECT ` + transferRequestColumns + ` FROM transfer_requests WHERE id = $1`

	req, err := scanTransferRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get transfer request: %w", err)
	}
	return req, nil
}

// GetByIDForUpdate fetches a transfer request with pessimistic locking.
// The lock is what serializes concurrent approvals of one request.
func (r *TransferRequestRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TransferRequest, error) {
	query := `SELECT ` + transferRequestColumns + ` FROM transfer_requests WHERE id = $1 FOR UPDATE`

	req, err := scanTransferRequest(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get transfer request for update: %w", err)
	}
	return req, nil
}

// UpdateStatus writes a terminal status transition inside a transaction.
func (r *TransferRequestRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransferRequestStatus, txHash *string) error {
	query := `UPDATE transfer_requests SET status = $1, tx_hash = $2, updated_at = $3 WHERE id = $4`

	tag, err := tx.Exec(ctx, query, status, txHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update transfer request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update transfer request status: request %s not found", id)
	}
	return nil
}

// UpdateStep persists a settlement step marker. Markers are written
// outside the credit transaction so a crash between steps still leaves
// the last completed step visible.
func (r *TransferRequestRepo) UpdateStep(ctx context.Context, id uuid.UUID, step domain.SettlementStep) error {
	query := `UPDATE transfer_requests SET step = $1, updated_at = $2 WHERE id = $3`

	_, err := r.pool.Exec(ctx, query, step, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update transfer request step: %w", err)
	}
	return nil
}
