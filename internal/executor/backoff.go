package executor

import (
	"math"
	"time"

	"github.com/boundary-resolver/internal/config"
)

// BackoffDelay = min(base × multiplier^attempt, max), attempt считается с нуля
func BackoffDelay(cfg config.ProviderConfig, attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	mult := cfg.BackoffMultiplier
	if mult < 1 {
		mult = 1
	}

	delay := float64(cfg.BaseBackoff) * math.Pow(mult, float64(attempt))
	if cfg.MaxBackoff > 0 && (delay > float64(cfg.MaxBackoff) || math.IsInf(delay, 0) || math.IsNaN(delay)) {
		return cfg.MaxBackoff
	}
	return time.Duration(delay)
}
