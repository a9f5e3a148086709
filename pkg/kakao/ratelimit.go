package kakao

import (
	"golang.org/x/time/rate"
)

const (
	// DefaultRateLimit matches the local service's comfortable throughput
	DefaultRateLimit = 10.0

	// DefaultRateBurst allows a short burst of tool calls from one agent turn
	DefaultRateBurst = 5
)

// newLimiter builds the limiter guarding the upstream service.
// A non-positive rps disables limiting entirely.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
