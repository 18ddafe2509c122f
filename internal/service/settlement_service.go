package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"
	"custody-core/internal/metrics"
	"custody-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettlementServiceImpl implements ports.SettlementService: the
// deposit-approval pipeline that credits a user from the treasury and
// forwards the credited funds to the user's upstream merchant.
//
// The pipeline is a persisted state machine. Each completed step writes
// a marker on the TransferRequest row, so a mid-pipeline crash leaves an
// exact record of how far settlement got. The status gate is
// authoritative here: a non-pending request is rejected regardless of
// what the calling UI believed.
type SettlementServiceImpl struct {
	requestRepo      ports.TransferRequestRepository
	walletRepo       ports.WalletRepository
	userRepo         ports.UserRepository
	assetRepo        ports.AssetRepository
	depositRepo      ports.DepositRepository
	txRepo           ports.TransactionRepository
	notificationRepo ports.NotificationRepository
	gateway          ports.GatewayService
	transactor       ports.DBTransactor
	treasuryUserID   uuid.UUID
	log              zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl. The treasury
// user owns one hot wallet per asset; all approvals draw from it.
func NewSettlementService(
	requestRepo ports.TransferRequestRepository,
	walletRepo ports.WalletRepository,
	userRepo ports.UserRepository,
	assetRepo ports.AssetRepository,
	depositRepo ports.DepositRepository,
	txRepo ports.TransactionRepository,
	notificationRepo ports.NotificationRepository,
	gateway ports.GatewayService,
	transactor ports.DBTransactor,
	treasuryUserID uuid.UUID,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		requestRepo:      requestRepo,
		walletRepo:       walletRepo,
		userRepo:         userRepo,
		assetRepo:        assetRepo,
		depositRepo:      depositRepo,
		txRepo:           txRepo,
		notificationRepo: notificationRepo,
		gateway:          gateway,
		transactor:       transactor,
		treasuryUserID:   treasuryUserID,
		log:              log,
	}
}

// Approve runs the six-step settlement pipeline for a pending request.
//
// Steps 1-2 (treasury transfer, user credit) are all-or-nothing: any
// failure there aborts before the user's ledger is touched and the
// request stays pending for retry. Steps 3-6 (the forwarding leg) degrade
// gracefully: the deposit stays credited, forwarding is skipped, and a
// warning notification records the provisional state for manual retry.
func (s *SettlementServiceImpl) Approve(ctx context.Context, requestID uuid.UUID) (*ports.SettlementResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Authoritative status gate. The row lock makes concurrent approvals
	// of the same request serialize here; the loser sees "approved".
	req, err := s.requestRepo.GetByIDForUpdate(ctx, dbTx, requestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock transfer request: %w", err))
	}
	if req == nil {
		return nil, apperror.ErrNotFound("transfer request")
	}
	if !req.IsPending() {
		return nil, apperror.ErrRequestNotPending(string(req.Status))
	}
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	asset, err := s.assetRepo.GetBySymbol(ctx, req.CoinType)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load asset: %w", err))
	}
	if asset == nil {
		return nil, apperror.ErrUnsupportedAsset(req.CoinType)
	}

	userWallet, err := s.walletRepo.GetByUser(ctx, req.UserID, req.CoinType, domain.WalletTypeHot)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load user wallet: %w", err))
	}
	if userWallet == nil {
		return nil, apperror.ErrNotFound("user hot wallet")
	}

	treasuryWallet, err := s.walletRepo.GetByUser(ctx, s.treasuryUserID, req.CoinType, domain.WalletTypeHot)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load treasury wallet: %w", err))
	}
	if treasuryWallet == nil {
		return nil, apperror.ErrNotFound("treasury wallet")
	}
	if treasuryWallet.Balance < req.Amount {
		return nil, apperror.ErrInsufficientTreasury(req.Amount, treasuryWallet.Balance)
	}

	// Step 1: treasury -> user on-chain transfer. Failure aborts the
	// whole approval before any ledger mutation.
	creditSend, err := s.gateway.Send(ctx, ports.SendRequest{
		WalletID:  treasuryWallet.ID,
		ToAddress: userWallet.Address,
		Amount:    req.Amount,
		CoinType:  req.CoinType,
		Method:    "treasury_credit",
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == "PAY_001" {
			return nil, apperror.ErrInsufficientTreasury(req.Amount, treasuryWallet.Balance)
		}
		return nil, err
	}
	s.markStep(ctx, requestID, domain.StepCreditTransfer)

	// Step 2: credit the user's ledger, record the deposit, and flip the
	// request to approved, all in the gate's transaction.
	lockedUser, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, userWallet.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock user wallet: %w", err))
	}
	if lockedUser == nil {
		return nil, apperror.ErrNotFound("user hot wallet")
	}

	now := time.Now().UTC()
	creditedBalance := lockedUser.Balance + req.Amount
	deposit := &domain.Deposit{
		ID:          uuid.New(),
		WalletID:    lockedUser.ID,
		TxHash:      creditSend.TxHash,
		Amount:      req.Amount,
		Status:      domain.DepositStatusConfirmed,
		FromAddress: treasuryWallet.Address,
		Method:      "admin_approval",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	creditRow := &domain.Transaction{
		ID:            uuid.New(),
		WalletID:      lockedUser.ID,
		Type:          domain.TransactionTypeDeposit,
		Amount:        req.Amount,
		BalanceBefore: lockedUser.Balance,
		BalanceAfter:  creditedBalance,
		ReferenceID:   requestID.String(),
		TxHash:        &creditSend.TxHash,
		CreatedAt:     now,
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, lockedUser.ID, creditedBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit user balance: %w", err))
	}
	if err := s.depositRepo.Create(ctx, dbTx, deposit); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create deposit: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, creditRow); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create credit ledger row: %w", err))
	}
	if err := s.requestRepo.UpdateStatus(ctx, dbTx, requestID, domain.TransferRequestApproved, &creditSend.TxHash); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("approve request: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit credit leg: %w", err))
	}
	s.markStep(ctx, requestID, domain.StepCreditLedger)

	s.log.Info().
		Str("request_id", requestID.String()).
		Str("credit_tx_hash", creditSend.TxHash).
		Int64("amount", req.Amount).
		Msg("settlement credit leg committed")

	result := &ports.SettlementResult{
		RequestID:    requestID,
		CreditTxHash: creditSend.TxHash,
	}

	// Steps 3-6: forwarding leg. From here on the deposit stands even if
	// forwarding cannot run.
	merchantWallet, reason := s.resolveMerchantWallet(ctx, req.UserID, req.CoinType)
	if merchantWallet == nil {
		return s.degrade(ctx, req, result, reason), nil
	}
	s.markStep(ctx, requestID, domain.StepResolveMerchant)

	// Step 4: user -> merchant transfer of the full credited amount. The
	// send decrements the user's balance back to where it started, which
	// is step 5's zeroing.
	forwardSend, err := s.gateway.Send(ctx, ports.SendRequest{
		WalletID:  userWallet.ID,
		ToAddress: merchantWallet.Address,
		Amount:    req.Amount,
		CoinType:  req.CoinType,
		Method:    "merchant_forwarding",
	})
	if err != nil {
		return s.degrade(ctx, req, result, fmt.Sprintf("forwarding transfer failed: %v", err)), nil
	}
	s.markStep(ctx, requestID, domain.StepForwardTransfer)
	s.markStep(ctx, requestID, domain.StepZeroBalance)

	result.ForwardTxHash = forwardSend.TxHash

	// Step 6: settlement fully recorded.
	s.notify(ctx, req.UserID, domain.NotificationInfo, "Deposit settled",
		fmt.Sprintf("Deposit of %d %s credited and forwarded to merchant (tx %s)",
			req.Amount, req.CoinType, forwardSend.TxHash))
	s.markStep(ctx, requestID, domain.StepRecorded)
	metrics.SettlementsApproved.WithLabelValues(req.CoinType, "true").Inc()

	s.log.Info().
		Str("request_id", requestID.String()).
		Str("forward_tx_hash", forwardSend.TxHash).
		Msg("settlement completed")

	return result, nil
}

// Reject terminally rejects a pending request. No funds have moved yet,
// so no compensation is needed.
func (s *SettlementServiceImpl) Reject(ctx context.Context, requestID uuid.UUID) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	req, err := s.requestRepo.GetByIDForUpdate(ctx, dbTx, requestID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock transfer request: %w", err))
	}
	if req == nil {
		return apperror.ErrNotFound("transfer request")
	}
	if !req.IsPending() {
		return apperror.ErrRequestNotPending(string(req.Status))
	}

	if err := s.requestRepo.UpdateStatus(ctx, dbTx, requestID, domain.TransferRequestRejected, nil); err != nil {
		return apperror.InternalError(fmt.Errorf("reject request: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("request_id", requestID.String()).Msg("transfer request rejected")
	return nil
}

// resolveMerchantWallet walks user -> upstream merchant -> merchant hot
// wallet for the asset. A nil wallet comes back with the reason the walk
// stopped.
func (s *SettlementServiceImpl) resolveMerchantWallet(ctx context.Context, userID uuid.UUID, coinType string) (*domain.Wallet, string) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Sprintf("user lookup failed: %v", err)
	}
	if user == nil {
		return nil, "user not found"
	}
	if user.MerchantID == nil {
		return nil, "user has no upstream merchant"
	}
	wallet, err := s.walletRepo.GetByUser(ctx, *user.MerchantID, coinType, domain.WalletTypeHot)
	if err != nil {
		return nil, fmt.Sprintf("merchant wallet lookup failed: %v", err)
	}
	if wallet == nil {
		return nil, fmt.Sprintf("merchant has no %s wallet", coinType)
	}
	return wallet, ""
}

// degrade records a skipped forwarding leg: the deposit stays credited,
// the user keeps the balance, and a warning marks the provisional state
// for manual follow-up.
func (s *SettlementServiceImpl) degrade(ctx context.Context, req *domain.TransferRequest, result *ports.SettlementResult, reason string) *ports.SettlementResult {
	s.log.Warn().
		Str("request_id", req.ID.String()).
		Str("reason", reason).
		Msg("settlement forwarding skipped, deposit stands")

	s.notify(ctx, req.UserID, domain.NotificationWarning, "Settlement forwarding skipped",
		fmt.Sprintf("Deposit of %d %s credited but not forwarded: %s", req.Amount, req.CoinType, reason))

	metrics.SettlementsApproved.WithLabelValues(req.CoinType, "false").Inc()
	result.ForwardingFailed = true
	result.Warning = reason
	return result
}

func (s *SettlementServiceImpl) notify(ctx context.Context, userID uuid.UUID, level domain.NotificationLevel, title, body string) {
	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Level:     level,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("notification write failed")
	}
}

func (s *SettlementServiceImpl) markStep(ctx context.Context, requestID uuid.UUID, step domain.SettlementStep) {
	if err := s.requestRepo.UpdateStep(ctx, requestID, step); err != nil {
		s.log.Warn().Err(err).
			Str("request_id", requestID.String()).
			Str("step", string(step)).
			Msg("settlement step marker write failed")
	}
}
