package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Configuration (CFG) ----
// Missing external credentials or endpoints. Fatal; never silently
// defaulted for sponsor credentials.

func ErrMissingSponsorCredentials() *AppError {
	return New("CFG_001", "Sponsor service credentials not configured", http.StatusInternalServerError)
}

func ErrMissingChainEndpoint(chainID string) *AppError {
	return New("CFG_002", fmt.Sprintf("No RPC endpoint configured for chain %s", chainID), http.StatusInternalServerError)
}

func ErrUnsupportedAsset(symbol string) *AppError {
	return New("CFG_003", fmt.Sprintf("Asset %s is not supported", symbol), http.StatusBadRequest)
}

// ---- Validation (VAL) ----

func ErrValidation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrColdWalletSend() *AppError {
	return New("VAL_002", "Cold wallets cannot be used as a send source", http.StatusForbidden)
}

func ErrNotFound(entity string) *AppError {
	return New("VAL_003", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_004", "Amount must be greater than zero", http.StatusBadRequest)
}

func ErrRequestNotPending(status string) *AppError {
	return New("VAL_005", fmt.Sprintf("Transfer request is already %s", status), http.StatusConflict)
}

// ---- Balance / Funds (PAY) ----

// ErrInsufficientBalance reports exact required/available/shortfall amounts
// so an operator can top up before retrying.
func ErrInsufficientBalance(required, available int64) *AppError {
	return New("PAY_001",
		fmt.Sprintf("Insufficient balance: required %d, available %d, shortfall %d",
			required, available, required-available),
		http.StatusPaymentRequired)
}

func ErrInsufficientTreasury(required, available int64) *AppError {
	return New("PAY_002",
		fmt.Sprintf("Insufficient treasury balance: required %d, available %d, shortfall %d",
			required, available, required-available),
		http.StatusPaymentRequired)
}

// ---- Chain (CHN) ----
// External service or RPC failure. On the receipt-polling path these are
// mapped to status "processing", never surfaced as terminal.

func ErrChainService(err error) *AppError {
	return Wrap("CHN_001", "External chain service failure", http.StatusBadGateway, err)
}

func ErrComposeFailed(err error) *AppError {
	return Wrap("CHN_002", "Transaction composition failed", http.StatusBadGateway, err)
}

func ErrExecuteFailed(err error) *AppError {
	return Wrap("CHN_003", "Transaction execution failed", http.StatusBadGateway, err)
}

// ---- Encryption (ENC) ----
// Always fatal, never auto-retried.

func ErrDecryptionFailure(err error) *AppError {
	return Wrap("ENC_001", "Private key decryption failed", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("ENC_002", "Private key encryption failed", http.StatusInternalServerError, err)
}

// ---- Security (SEC) ----

func ErrInvalidServiceToken() *AppError {
	return New("SEC_001", "Invalid or missing service token", http.StatusUnauthorized)
}

func ErrInternalOnly() *AppError {
	return New("SEC_002", "Endpoint is not reachable from a public client", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
