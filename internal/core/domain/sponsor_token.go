package domain

import "time"

// SponsorToken is the persisted OAuth bearer token for the external
// sponsor/composition service, cached across invocations.
type SponsorToken struct {
	Token     string    `json:"-"` // Never expose
	ExpiresAt time.Time `json:"expires_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidAt reports whether the token is still usable at the given instant,
// with a safety margin so a token is never presented right at expiry.
func (t *SponsorToken) ValidAt(now time.Time, margin time.Duration) bool {
	return t.Token != "" && now.Add(margin).Before(t.ExpiresAt)
}
