package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeTx is a pgx.Tx stand-in. Row locks acquired during the transaction
// register release callbacks that fire on Commit or Rollback, mirroring
// how FOR UPDATE locks are held to transaction end.
type fakeTx struct {
	pgx.Tx
	mu       sync.Mutex
	releases []func()
	done     bool
}

func (t *fakeTx) Commit(_ context.Context) error   { t.finish(); return nil }
func (t *fakeTx) Rollback(_ context.Context) error { t.finish(); return nil }

func (t *fakeTx) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}
	t.done = true
	for i := len(t.releases) - 1; i >= 0; i-- {
		t.releases[i]()
	}
}

func (t *fakeTx) onFinish(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.releases = append(t.releases, f)
}

type fakeTransactor struct{}

func (fakeTransactor) Begin(_ context.Context) (pgx.Tx, error) { return &fakeTx{}, nil }

// rowLocks emulates per-row FOR UPDATE serialization.
type rowLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *rowLocks) acquire(tx pgx.Tx, key string) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	if ft, ok := tx.(*fakeTx); ok {
		ft.onFinish(m.Unlock)
	} else {
		m.Unlock()
	}
}

// --- Wallets ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
	locks   rowLocks
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(_ context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if w, ok := r.wallets[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByUser(_ context.Context, userID uuid.UUID, coinType string, walletType domain.WalletType) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByUser(userID, coinType, walletType), nil
}

func (r *inMemoryWalletRepo) findByUser(userID uuid.UUID, coinType string, walletType domain.WalletType) *domain.Wallet {
	for _, w := range r.wallets {
		if w.UserID == userID && w.CoinType == coinType && w.WalletType == walletType {
			cp := *w
			return &cp
		}
	}
	return nil
}

func (r *inMemoryWalletRepo) GetByIDForUpdate(_ context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	r.locks.acquire(tx, "wallet:"+id.String())
	r.mu.RLock()
	defer r.mu.RUnlock()
	if w, ok := r.wallets[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByUserForUpdate(_ context.Context, tx pgx.Tx, userID uuid.UUID, coinType string, walletType domain.WalletType) (*domain.Wallet, error) {
	r.mu.RLock()
	w := r.findByUser(userID, coinType, walletType)
	r.mu.RUnlock()
	if w == nil {
		return nil, nil
	}
	r.locks.acquire(tx, "wallet:"+w.ID.String())
	// Re-read after the lock settles; another tx may have mutated the row.
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByUser(userID, coinType, walletType), nil
}

func (r *inMemoryWalletRepo) UpdateBalance(_ context.Context, _ pgx.Tx, walletID uuid.UUID, balance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet %s not found", walletID)
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// --- Assets ---

type inMemoryAssetRepo struct {
	mu     sync.RWMutex
	assets map[string]domain.SupportedAsset
}

func newInMemoryAssetRepo(assets ...domain.SupportedAsset) *inMemoryAssetRepo {
	r := &inMemoryAssetRepo{assets: make(map[string]domain.SupportedAsset)}
	for _, a := range assets {
		r.assets[a.Symbol] = a
	}
	return r
}

func (r *inMemoryAssetRepo) GetBySymbol(_ context.Context, symbol string) (*domain.SupportedAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.assets[symbol]; ok {
		resolved := a.WithResolvedFamily()
		return &resolved, nil
	}
	return nil, nil
}

func (r *inMemoryAssetRepo) List(_ context.Context) ([]domain.SupportedAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SupportedAsset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a.WithResolvedFamily())
	}
	return out, nil
}

// --- Users ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newInMemoryUserRepo(users ...*domain.User) *inMemoryUserRepo {
	r := &inMemoryUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *inMemoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

// --- Transfer requests ---

type inMemoryTransferRequestRepo struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*domain.TransferRequest
	locks    rowLocks
}

func newInMemoryTransferRequestRepo(requests ...*domain.TransferRequest) *inMemoryTransferRequestRepo {
	r := &inMemoryTransferRequestRepo{requests: make(map[uuid.UUID]*domain.TransferRequest)}
	for _, req := range requests {
		cp := *req
		r.requests[req.ID] = &cp
	}
	return r
}

func (r *inMemoryTransferRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.TransferRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if req, ok := r.requests[id]; ok {
		cp := *req
		return &cp, nil
	}
	return nil, nil
}

func (r *inMemoryTransferRequestRepo) GetByIDForUpdate(_ context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TransferRequest, error) {
	r.locks.acquire(tx, "request:"+id.String())
	return r.GetByID(context.Background(), id)
}

func (r *inMemoryTransferRequestRepo) UpdateStatus(_ context.Context, _ pgx.Tx, id uuid.UUID, status domain.TransferRequestStatus, txHash *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("transfer request %s not found", id)
	}
	req.Status = status
	req.TxHash = txHash
	req.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryTransferRequestRepo) UpdateStep(_ context.Context, id uuid.UUID, step domain.SettlementStep) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("transfer request %s not found", id)
	}
	req.Step = step
	return nil
}

// --- Deposits ---

type inMemoryDepositRepo struct {
	mu       sync.RWMutex
	deposits []*domain.Deposit
}

func newInMemoryDepositRepo() *inMemoryDepositRepo { return &inMemoryDepositRepo{} }

func (r *inMemoryDepositRepo) Create(_ context.Context, _ pgx.Tx, d *domain.Deposit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.deposits = append(r.deposits, &cp)
	return nil
}

func (r *inMemoryDepositRepo) GetByTxHash(_ context.Context, txHash string) (*domain.Deposit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.deposits {
		if d.TxHash == txHash {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryDepositRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.DepositStatus, confirmations int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.deposits {
		if d.ID == id {
			d.Status = status
			d.Confirmations = confirmations
			return nil
		}
	}
	return fmt.Errorf("deposit %s not found", id)
}

func (r *inMemoryDepositRepo) all() []domain.Deposit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Deposit, 0, len(r.deposits))
	for _, d := range r.deposits {
		out = append(out, *d)
	}
	return out
}

// --- Withdrawals ---

type inMemoryWithdrawalRepo struct {
	mu          sync.RWMutex
	withdrawals []*domain.Withdrawal
}

func newInMemoryWithdrawalRepo() *inMemoryWithdrawalRepo { return &inMemoryWithdrawalRepo{} }

func (r *inMemoryWithdrawalRepo) Create(_ context.Context, _ pgx.Tx, w *domain.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.withdrawals = append(r.withdrawals, &cp)
	return nil
}

func (r *inMemoryWithdrawalRepo) GetByTxHash(_ context.Context, txHash string) (*domain.Withdrawal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.withdrawals {
		if w.TxHash == txHash {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWithdrawalRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.WithdrawalStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.withdrawals {
		if w.ID == id {
			w.Status = status
			return nil
		}
	}
	return fmt.Errorf("withdrawal %s not found", id)
}

func (r *inMemoryWithdrawalRepo) byMethod(method string) []domain.Withdrawal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Withdrawal
	for _, w := range r.withdrawals {
		if w.Method == method {
			out = append(out, *w)
		}
	}
	return out
}

// --- Ledger transactions ---

type inMemoryTransactionRepo struct {
	mu   sync.RWMutex
	rows []*domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo { return &inMemoryTransactionRepo{} }

func (r *inMemoryTransactionRepo) Create(_ context.Context, _ pgx.Tx, row *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *row
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *inMemoryTransactionRepo) ListByWallet(_ context.Context, walletID uuid.UUID, limit int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Transaction
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if r.rows[i].WalletID == walletID {
			out = append(out, *r.rows[i])
		}
	}
	return out, nil
}

// --- Notifications ---

type inMemoryNotificationRepo struct {
	mu   sync.RWMutex
	rows []domain.Notification
}

func newInMemoryNotificationRepo() *inMemoryNotificationRepo { return &inMemoryNotificationRepo{} }

func (r *inMemoryNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *n)
	return nil
}

func (r *inMemoryNotificationRepo) all() []domain.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Notification(nil), r.rows...)
}

// --- Gas policies ---

type inMemoryGasPolicyRepo struct {
	policies map[domain.UserTier]domain.GasPolicy
}

func newInMemoryGasPolicyRepo(policies ...domain.GasPolicy) *inMemoryGasPolicyRepo {
	r := &inMemoryGasPolicyRepo{policies: make(map[domain.UserTier]domain.GasPolicy)}
	for _, p := range policies {
		r.policies[p.Tier] = p
	}
	return r
}

func (r *inMemoryGasPolicyRepo) GetByTier(_ context.Context, tier domain.UserTier) (*domain.GasPolicy, error) {
	if p, ok := r.policies[tier]; ok {
		return &p, nil
	}
	return nil, nil
}

// --- Chain adapter ---

// fakeChainAdapter records transfers and hands out sequential hashes.
// failOnCall (1-based) makes that transfer attempt fail.
type fakeChainAdapter struct {
	mu         sync.Mutex
	family     domain.ChainFamily
	calls      []ports.TransferParams
	failOnCall int
	failErr    error
}

func newFakeChainAdapter(family domain.ChainFamily) *fakeChainAdapter {
	return &fakeChainAdapter{family: family}
}

func (a *fakeChainAdapter) Family() domain.ChainFamily { return a.family }

func (a *fakeChainAdapter) Transfer(_ context.Context, params ports.TransferParams) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, params)
	if a.failOnCall == len(a.calls) && a.failErr != nil {
		return "", a.failErr
	}
	return fmt.Sprintf("0xtest%d", len(a.calls)), nil
}

func (a *fakeChainAdapter) GetReceipt(_ context.Context, txHash string) (*domain.Receipt, error) {
	block := int64(100)
	conf := int64(12)
	return &domain.Receipt{
		TxHash:        txHash,
		Status:        domain.ReceiptStatusCompleted,
		BlockNumber:   &block,
		Confirmations: &conf,
	}, nil
}

func (a *fakeChainAdapter) transferCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

var _ ports.ChainAdapter = (*fakeChainAdapter)(nil)
var _ ports.WalletRepository = (*inMemoryWalletRepo)(nil)
var _ ports.AssetRepository = (*inMemoryAssetRepo)(nil)
var _ ports.UserRepository = (*inMemoryUserRepo)(nil)
var _ ports.TransferRequestRepository = (*inMemoryTransferRequestRepo)(nil)
var _ ports.DepositRepository = (*inMemoryDepositRepo)(nil)
var _ ports.WithdrawalRepository = (*inMemoryWithdrawalRepo)(nil)
var _ ports.TransactionRepository = (*inMemoryTransactionRepo)(nil)
var _ ports.NotificationRepository = (*inMemoryNotificationRepo)(nil)
var _ ports.GasPolicyRepository = (*inMemoryGasPolicyRepo)(nil)
var _ ports.DBTransactor = fakeTransactor{}
