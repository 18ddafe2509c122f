package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserTier determines how much network fee the platform sponsors on the
// user's behalf.
type UserTier string

const (
	TierBasic    UserTier = "BASIC"
	TierStandard UserTier = "STANDARD"
	TierPremium  UserTier = "PREMIUM"
	TierVIP      UserTier = "VIP"
)

// User is a platform end user. MerchantID points at the upstream merchant
// that credited funds are forwarded to after settlement.
type User struct {
	ID         uuid.UUID  `json:"id"`
	MerchantID *uuid.UUID `json:"merchant_id,omitempty"`
	Tier       UserTier   `json:"tier"`
	CreatedAt  time.Time  `json:"created_at"`
}

// GasPayment is the resolved sponsorship decision attached to an EVM
// compose call.
type GasPayment struct {
	Sponsor        bool   `json:"sponsor"`
	Token          string `json:"token,omitempty"`            // Fee token symbol when sponsored
	MaxUserPayment int64  `json:"max_user_payment,omitempty"` // 0 = fully sponsored
}

// GasPolicy is an externally managed policy row mapping a tier to a
// sponsorship decision.
type GasPolicy struct {
	Tier           UserTier `json:"tier"`
	Sponsor        bool     `json:"sponsor"`
	Token          string   `json:"token"`
	MaxUserPayment int64    `json:"max_user_payment"`
}
