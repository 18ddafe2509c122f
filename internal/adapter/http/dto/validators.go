package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	coinTypeRe = regexp.MustCompile(`^[A-Z0-9]{2,12}$`)
	evmAddrRe  = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	tronAddrRe = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("coin_type", validateCoinType)
		_ = v.RegisterValidation("chain_address", validateChainAddress)
	}
}

// validateCoinType allows short uppercase asset symbols (USDT, KRWQ).
func validateCoinType(fl validator.FieldLevel) bool {
	return coinTypeRe.MatchString(fl.Field().String())
}

// validateChainAddress accepts a hex EVM address or a base58check Tron
// address. Per-family checksum validation happens in the adapters.
func validateChainAddress(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return evmAddrRe.MatchString(s) || tronAddrRe.MatchString(s)
}
