package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("VAL_002", "Cold wallet send", http.StatusBadRequest),
			expected: "[VAL_002] Cold wallet send",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Validation", ErrValidation("missing field"), "VAL_001", 400},
		{"ColdWalletSend", ErrColdWalletSend(), "VAL_002", 403},
		{"NotFound", ErrNotFound("Wallet"), "VAL_003", 404},
		{"InvalidAmount", ErrInvalidAmount(), "VAL_004", 400},
		{"RequestNotPending", ErrRequestNotPending("approved"), "VAL_005", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestInsufficientBalance_ReportsShortfall(t *testing.T) {
	err := ErrInsufficientBalance(100, 40)
	assert.Equal(t, "PAY_001", err.Code)
	assert.Equal(t, 402, err.HTTPStatus)
	assert.Contains(t, err.Message, "required 100")
	assert.Contains(t, err.Message, "available 40")
	assert.Contains(t, err.Message, "shortfall 60")
}

func TestInsufficientTreasury_ReportsShortfall(t *testing.T) {
	err := ErrInsufficientTreasury(50, 10)
	assert.Equal(t, "PAY_002", err.Code)
	assert.Contains(t, err.Message, "shortfall 40")
}

func TestChainErrors_WrapCause(t *testing.T) {
	inner := fmt.Errorf("dial tcp: connection refused")
	tests := []struct {
		name string
		err  *AppError
		code string
	}{
		{"ChainService", ErrChainService(inner), "CHN_001"},
		{"ComposeFailed", ErrComposeFailed(inner), "CHN_002"},
		{"ExecuteFailed", ErrExecuteFailed(inner), "CHN_003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, 502, tt.err.HTTPStatus)
			assert.True(t, errors.Is(tt.err, inner))
		})
	}
}

func TestEncryptionErrors(t *testing.T) {
	inner := fmt.Errorf("cipher: message authentication failed")
	decErr := ErrDecryptionFailure(inner)
	assert.Equal(t, "ENC_001", decErr.Code)
	assert.Equal(t, 500, decErr.HTTPStatus)
	assert.True(t, errors.Is(decErr, inner))

	encErr := ErrEncryptionFailure(inner)
	assert.Equal(t, "ENC_002", encErr.Code)
}

func TestConfigurationErrors(t *testing.T) {
	assert.Equal(t, "CFG_001", ErrMissingSponsorCredentials().Code)
	assert.Equal(t, "CFG_002", ErrMissingChainEndpoint("728126428").Code)
	assert.Contains(t, ErrUnsupportedAsset("DOGE").Message, "DOGE")
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))
}
