package http

import (
	"golang.org/x/time/rate"

	"github.com/vovakirdan/cipherchat-server/internal/config"
)

// newFrameLimiter budgets inbound frames per connection so one hot client
// cannot starve the relay. A non-positive rate disables limiting.
func newFrameLimiter(cfg *config.Config) *rate.Limiter {
	if cfg == nil || cfg.RatePerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
}
