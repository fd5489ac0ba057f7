package ratelimit

import "context"

// Limiter throttles claim submissions per client key. A nil or disabled
// limiter admits everything.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NopLimiter admits every request. Used when redis is not configured.
type NopLimiter struct{}

func (NopLimiter) Allow(context.Context, string) (bool, error) {
	return true, nil
}
