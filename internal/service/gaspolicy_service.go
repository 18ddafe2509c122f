package service

import (
	"context"

	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GasPolicyServiceImpl implements ports.GasPolicyService against
// externally managed policy rows. Lookups are read-only; any failure
// resolves to "no sponsorship" so a broken policy table can never cause
// accidental over-sponsorship.
type GasPolicyServiceImpl struct {
	userRepo   ports.UserRepository
	policyRepo ports.GasPolicyRepository
	log        zerolog.Logger
}

// NewGasPolicyService creates a new GasPolicyServiceImpl.
func NewGasPolicyService(userRepo ports.UserRepository, policyRepo ports.GasPolicyRepository, log zerolog.Logger) *GasPolicyServiceImpl {
	return &GasPolicyServiceImpl{
		userRepo:   userRepo,
		policyRepo: policyRepo,
		log:        log,
	}
}

// Resolve maps the user's tier to a sponsorship decision.
func (s *GasPolicyServiceImpl) Resolve(ctx context.Context, userID uuid.UUID) (*domain.GasPayment, error) {
	noSponsorship := &domain.GasPayment{Sponsor: false}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).
			Msg("gas policy: user lookup failed, defaulting to no sponsorship")
		return noSponsorship, nil
	}

	policy, err := s.policyRepo.GetByTier(ctx, user.Tier)
	if err != nil || policy == nil {
		s.log.Warn().Err(err).Str("tier", string(user.Tier)).
			Msg("gas policy: policy lookup failed, defaulting to no sponsorship")
		return noSponsorship, nil
	}

	return &domain.GasPayment{
		Sponsor:        policy.Sponsor,
		Token:          policy.Token,
		MaxUserPayment: policy.MaxUserPayment,
	}, nil
}
