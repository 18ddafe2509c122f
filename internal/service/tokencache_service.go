package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"custody-core/internal/core/domain"
	"custody-core/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// expiryMargin keeps a token from being presented right at its expiry;
// anything inside the margin triggers a refresh.
const expiryMargin = 30 * time.Second

// TokenCacheServiceImpl implements ports.SponsorTokenSource as an
// explicit token-cache service: Redis fast path, persisted
// {token, expiry} row, injected clock, and a single-flight mutex so
// concurrent requests share one refresh.
type TokenCacheServiceImpl struct {
	tokenRepo  ports.SponsorTokenRepository
	cache      ports.TokenCache
	authClient ports.SponsorAuthClient
	clock      ports.Clock
	log        zerolog.Logger

	mu sync.Mutex
}

// NewTokenCacheService creates a new TokenCacheServiceImpl.
func NewTokenCacheService(
	tokenRepo ports.SponsorTokenRepository,
	cache ports.TokenCache,
	authClient ports.SponsorAuthClient,
	clock ports.Clock,
	log zerolog.Logger,
) *TokenCacheServiceImpl {
	return &TokenCacheServiceImpl{
		tokenRepo:  tokenRepo,
		cache:      cache,
		authClient: authClient,
		clock:      clock,
		log:        log,
	}
}

// GetValidToken returns a bearer token valid for at least the expiry
// margin, refreshing through the sponsor OAuth endpoint when needed.
func (s *TokenCacheServiceImpl) GetValidToken(ctx context.Context) (string, error) {
	now := s.clock.Now()

	// Fast path: Redis.
	if token, expiresAt, err := s.cache.Get(ctx); err == nil && token != "" {
		if now.Add(expiryMargin).Before(expiresAt) {
			return token, nil
		}
	} else if err != nil {
		s.log.Warn().Err(err).Msg("token cache: redis lookup failed, falling through")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the lock: another caller may have refreshed.
	now = s.clock.Now()
	persisted, err := s.tokenRepo.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("token cache: persisted token lookup failed")
	}
	if persisted != nil && persisted.ValidAt(now, expiryMargin) {
		s.cacheBestEffort(ctx, persisted.Token, persisted.ExpiresAt)
		return persisted.Token, nil
	}

	token, expiresAt, err := s.authClient.FetchToken(ctx)
	if err != nil {
		return "", fmt.Errorf("refreshing sponsor token: %w", err)
	}

	// When the sponsor issues a JWT, trust its exp claim over the
	// response's advertised lifetime.
	if claimExp := jwtExpiry(token); !claimExp.IsZero() {
		expiresAt = claimExp
	}

	record := &domain.SponsorToken{
		Token:     token,
		ExpiresAt: expiresAt,
		UpdatedAt: now,
	}
	if err := s.tokenRepo.Upsert(ctx, record); err != nil {
		s.log.Warn().Err(err).Msg("token cache: failed to persist refreshed token")
	}
	s.cacheBestEffort(ctx, token, expiresAt)

	s.log.Info().Time("expires_at", expiresAt).Msg("sponsor token refreshed")
	return token, nil
}

func (s *TokenCacheServiceImpl) cacheBestEffort(ctx context.Context, token string, expiresAt time.Time) {
	if err := s.cache.Set(ctx, token, expiresAt); err != nil {
		s.log.Warn().Err(err).Msg("token cache: failed to cache token in redis")
	}
}

// jwtExpiry reads the exp claim of an unverified JWT. Returns the zero
// time when the token is not a JWT or carries no expiry.
func jwtExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// SystemClock is the production ports.Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
