package rest

import (
	"math"
	"time"
)

const (
	initialDelay  = 1 * time.Second
	maxDelay      = 5 * time.Second
	backoffFactor = 2.0
)

// backoffDelay returns the wait before the attempt following the given
// one. Attempts are 1-based; the delay doubles per attempt and is capped
// at maxDelay.
func backoffDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(initialDelay) * math.Pow(backoffFactor, float64(attempt-1))
	if delay > float64(maxDelay) {
		delay = float64(maxDelay)
	}
	return time.Duration(delay)
}
