package postgres

import (
	"context"
	"testing"
	"time"

	"custody-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txHash := "0xdeadbeef"
	txn := &domain.Transaction{
		ID:            uuid.New(),
		WalletID:      uuid.New(),
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        50,
		BalanceBefore: 1000,
		BalanceAfter:  950,
		ReferenceID:   uuid.New().String(),
		TxHash:        &txHash,
		CreatedAt:     time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(txn.ID, txn.WalletID, txn.Type, txn.Amount, txn.BalanceBefore,
			txn.BalanceAfter, txn.ReferenceID, txn.TxHash, txn.Metadata, txn.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListByWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	walletID := uuid.New()
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "wallet_id", "type", "amount", "balance_before", "balance_after", "reference_id", "tx_hash", "metadata", "created_at"}).
		AddRow(uuid.New(), walletID, domain.TransactionTypeDeposit, int64(50), int64(0), int64(50), "ref-1", (*string)(nil), (*string)(nil), now).
		AddRow(uuid.New(), walletID, domain.TransactionTypeForwarding, int64(50), int64(50), int64(0), "ref-2", (*string)(nil), (*string)(nil), now)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE wallet_id").
		WithArgs(walletID, 10).
		WillReturnRows(rows)

	txns, err := repo.ListByWallet(context.Background(), walletID, 10)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.TransactionTypeDeposit, txns[0].Type)
	assert.Equal(t, int64(0), txns[1].BalanceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}
