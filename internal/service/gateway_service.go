package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"
	"custody-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GatewayServiceImpl implements ports.GatewayService. It is the single
// entry point for outbound transfers: every send locks the source wallet
// row, submits through the asset's chain adapter, and records the
// withdrawal and ledger rows in the same database transaction.
type GatewayServiceImpl struct {
	walletRepo       ports.WalletRepository
	assetRepo        ports.AssetRepository
	withdrawalRepo   ports.WithdrawalRepository
	txRepo           ports.TransactionRepository
	notificationRepo ports.NotificationRepository
	gasPolicy        ports.GasPolicyService
	vault            ports.KeyVault
	adapters         ports.AdapterRegistry
	transactor       ports.DBTransactor
	log              zerolog.Logger
}

// NewGatewayService creates a new GatewayServiceImpl.
func NewGatewayService(
	walletRepo ports.WalletRepository,
	assetRepo ports.AssetRepository,
	withdrawalRepo ports.WithdrawalRepository,
	txRepo ports.TransactionRepository,
	notificationRepo ports.NotificationRepository,
	gasPolicy ports.GasPolicyService,
	vault ports.KeyVault,
	adapters ports.AdapterRegistry,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *GatewayServiceImpl {
	return &GatewayServiceImpl{
		walletRepo:       walletRepo,
		assetRepo:        assetRepo,
		withdrawalRepo:   withdrawalRepo,
		txRepo:           txRepo,
		notificationRepo: notificationRepo,
		gasPolicy:        gasPolicy,
		vault:            vault,
		adapters:         adapters,
		transactor:       transactor,
		log:              log,
	}
}

// Send signs and submits an outbound transfer with pessimistic locking.
// The wallet's balance is decremented at submission time; receipt polling
// only reconciles statuses afterward.
func (s *GatewayServiceImpl) Send(ctx context.Context, req ports.SendRequest) (*ports.SendResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.ToAddress == "" {
		return nil, apperror.ErrValidation("to_address is required")
	}

	asset, err := s.assetRepo.GetBySymbol(ctx, req.CoinType)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load asset: %w", err))
	}
	if asset == nil {
		return nil, apperror.ErrUnsupportedAsset(req.CoinType)
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get wallet. The row lock serializes concurrent sends from
	// the same wallet for the whole sign+submit window.
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	if wallet.CoinType != req.CoinType {
		return nil, apperror.ErrValidation("wallet does not hold the requested asset")
	}

	// Business rule: cold wallets cannot send. Rejected before any key
	// material is decrypted or any chain call is made.
	if !wallet.CanSend() {
		return nil, apperror.ErrColdWalletSend()
	}

	// Business rule: sufficient recorded balance
	if wallet.Balance < req.Amount {
		return nil, apperror.ErrInsufficientBalance(req.Amount, wallet.Balance)
	}

	// Resolve gas sponsorship when the caller did not pin a decision.
	gasPayment := req.GasPayment
	if gasPayment == nil && asset.Family == domain.ChainFamilyEVM {
		gasPayment, err = s.gasPolicy.Resolve(ctx, wallet.UserID)
		if err != nil {
			return nil, err
		}
	}

	privateKey, err := s.vault.Decrypt(wallet.EncryptedPrivateKey)
	if err != nil {
		return nil, apperror.ErrDecryptionFailure(fmt.Errorf("wallet %s: %w", wallet.ID, err))
	}

	adapter, err := s.adapters.ForFamily(asset.Family)
	if err != nil {
		return nil, apperror.ErrChainService(fmt.Errorf("resolve adapter: %w", err))
	}

	txHash, err := adapter.Transfer(ctx, ports.TransferParams{
		Asset:       *asset,
		FromAddress: wallet.Address,
		ToAddress:   req.ToAddress,
		Amount:      req.Amount,
		PrivateKey:  privateKey,
		GasPayment:  gasPayment,
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.ErrChainService(err)
	}

	method := req.Method
	if method == "" {
		method = "user_withdrawal"
	}

	now := time.Now().UTC()
	withdrawal := &domain.Withdrawal{
		ID:        uuid.New(),
		WalletID:  wallet.ID,
		ToAddress: req.ToAddress,
		Amount:    req.Amount,
		TxHash:    txHash,
		Status:    domain.WithdrawalStatusProcessing,
		Method:    method,
		CreatedAt: now,
		UpdatedAt: now,
	}

	newBalance := wallet.Balance - req.Amount
	ledgerRow := &domain.Transaction{
		ID:            uuid.New(),
		WalletID:      wallet.ID,
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        req.Amount,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  newBalance,
		ReferenceID:   withdrawal.ID.String(),
		TxHash:        &txHash,
		CreatedAt:     now,
	}

	// Persist: optimistic balance decrement at submission time
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.withdrawalRepo.Create(ctx, dbTx, withdrawal); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create withdrawal: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, ledgerRow); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create ledger row: %w", err))
	}

	// Commit
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-process: notification row and initial receipt poll, both
	// best-effort.
	notification := &domain.Notification{
		ID:        uuid.New(),
		UserID:    wallet.UserID,
		Level:     domain.NotificationInfo,
		Title:     "Withdrawal submitted",
		Body:      fmt.Sprintf("Sent %d %s to %s (tx %s)", req.Amount, req.CoinType, req.ToAddress, txHash),
		CreatedAt: now,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.log.Warn().Err(err).Str("tx_hash", txHash).Msg("notification write failed")
	}

	receipt, err := adapter.GetReceipt(ctx, txHash)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_hash", txHash).Msg("initial receipt poll failed")
		receipt = &domain.Receipt{TxHash: txHash, Status: domain.ReceiptStatusProcessing}
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("tx_hash", txHash).
		Str("coin_type", req.CoinType).
		Int64("amount", req.Amount).
		Bool("sponsored", gasPayment != nil && gasPayment.Sponsor).
		Msg("transfer submitted")

	return &ports.SendResult{
		TxHash:       txHash,
		Receipt:      receipt,
		WithdrawalID: withdrawal.ID,
	}, nil
}

// GetReceipt polls the chain for a submitted transaction and reconciles
// the matching withdrawal row on terminal statuses.
func (s *GatewayServiceImpl) GetReceipt(ctx context.Context, txHash string, coinType string) (*domain.Receipt, error) {
	if txHash == "" {
		return nil, apperror.ErrValidation("tx_hash is required")
	}

	asset, err := s.assetRepo.GetBySymbol(ctx, coinType)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load asset: %w", err))
	}
	if asset == nil {
		return nil, apperror.ErrUnsupportedAsset(coinType)
	}

	adapter, err := s.adapters.ForFamily(asset.Family)
	if err != nil {
		return nil, apperror.ErrChainService(fmt.Errorf("resolve adapter: %w", err))
	}

	receipt, err := adapter.GetReceipt(ctx, txHash)
	if err != nil {
		// Transport failures on the polling path degrade to "processing"
		// so the caller keeps polling instead of surfacing a 5xx.
		s.log.Warn().Err(err).Str("tx_hash", txHash).Msg("receipt poll failed")
		return &domain.Receipt{TxHash: txHash, Status: domain.ReceiptStatusProcessing}, nil
	}

	switch receipt.Status {
	case domain.ReceiptStatusCompleted:
		s.reconcileWithdrawal(ctx, txHash, domain.WithdrawalStatusCompleted)
	case domain.ReceiptStatusFailed:
		s.reconcileWithdrawal(ctx, txHash, domain.WithdrawalStatusFailed)
	}

	return receipt, nil
}

func (s *GatewayServiceImpl) reconcileWithdrawal(ctx context.Context, txHash string, status domain.WithdrawalStatus) {
	w, err := s.withdrawalRepo.GetByTxHash(ctx, txHash)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_hash", txHash).Msg("withdrawal lookup failed during reconcile")
		return
	}
	if w == nil || w.Status == status {
		return
	}
	if err := s.withdrawalRepo.UpdateStatus(ctx, w.ID, status); err != nil {
		s.log.Warn().Err(err).Str("withdrawal_id", w.ID.String()).Msg("withdrawal status update failed")
	}
}

// MoveToCold moves recorded balance from a user's hot wallet to their
// cold wallet for one asset. Custody does not change, so no chain
// transfer is made; both rows mutate inside one locked transaction.
func (s *GatewayServiceImpl) MoveToCold(ctx context.Context, userID uuid.UUID, coinType string, amount int64) error {
	return s.moveBetween(ctx, userID, coinType, amount, domain.WalletTypeHot, domain.WalletTypeCold, domain.TransactionTypeColdMove)
}

// MoveToHot moves recorded balance from a user's cold wallet back to
// their hot wallet.
func (s *GatewayServiceImpl) MoveToHot(ctx context.Context, userID uuid.UUID, coinType string, amount int64) error {
	return s.moveBetween(ctx, userID, coinType, amount, domain.WalletTypeCold, domain.WalletTypeHot, domain.TransactionTypeHotMove)
}

func (s *GatewayServiceImpl) moveBetween(
	ctx context.Context,
	userID uuid.UUID,
	coinType string,
	amount int64,
	fromType, toType domain.WalletType,
	moveType domain.TransactionType,
) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock order is fixed (hot before cold) so opposing moves on the
	// same pair cannot deadlock.
	var from, to *domain.Wallet
	if fromType == domain.WalletTypeHot {
		from, err = s.walletRepo.GetByUserForUpdate(ctx, dbTx, userID, coinType, fromType)
		if err == nil {
			to, err = s.walletRepo.GetByUserForUpdate(ctx, dbTx, userID, coinType, toType)
		}
	} else {
		to, err = s.walletRepo.GetByUserForUpdate(ctx, dbTx, userID, coinType, toType)
		if err == nil {
			from, err = s.walletRepo.GetByUserForUpdate(ctx, dbTx, userID, coinType, fromType)
		}
	}
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock wallets: %w", err))
	}
	if from == nil {
		return apperror.ErrNotFound(string(fromType) + " wallet")
	}
	if to == nil {
		return apperror.ErrNotFound(string(toType) + " wallet")
	}

	if from.Balance < amount {
		return apperror.ErrInsufficientBalance(amount, from.Balance)
	}

	now := time.Now().UTC()
	refID := uuid.New().String()
	rows := []*domain.Transaction{
		{
			ID:            uuid.New(),
			WalletID:      from.ID,
			Type:          moveType,
			Amount:        -amount,
			BalanceBefore: from.Balance,
			BalanceAfter:  from.Balance - amount,
			ReferenceID:   refID,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New(),
			WalletID:      to.ID,
			Type:          moveType,
			Amount:        amount,
			BalanceBefore: to.Balance,
			BalanceAfter:  to.Balance + amount,
			ReferenceID:   refID,
			CreatedAt:     now,
		},
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, from.ID, from.Balance-amount); err != nil {
		return apperror.InternalError(fmt.Errorf("debit %s wallet: %w", fromType, err))
	}
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, to.ID, to.Balance+amount); err != nil {
		return apperror.InternalError(fmt.Errorf("credit %s wallet: %w", toType, err))
	}
	for _, row := range rows {
		if err := s.txRepo.Create(ctx, dbTx, row); err != nil {
			return apperror.InternalError(fmt.Errorf("create ledger row: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("coin_type", coinType).
		Int64("amount", amount).
		Str("direction", fmt.Sprintf("%s->%s", fromType, toType)).
		Msg("custody move recorded")

	return nil
}
