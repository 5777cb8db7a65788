// ABOUTME: Backoff helper for retried model API calls
// ABOUTME: Exponential growth with jitter, capped at a maximum delay
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps the delay between attempts
const maxBackoff = 30 * time.Second

// CalculateBackoff returns the delay before the given retry attempt.
// The base delay doubles each attempt, capped at maxBackoff, with up to
// +/-25% jitter so concurrent callers spread out.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
