package provider

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/petasbytes/go-chat-agent/memory"
)

// RateLimited delays calls to inner so no more than the configured number of
// requests start per minute.
type RateLimited struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewRateLimited wraps inner. A non-positive requestsPerMinute disables
// limiting and returns inner unchanged.
func NewRateLimited(inner Provider, requestsPerMinute float64) Provider {
	if requestsPerMinute <= 0 {
		return inner
	}
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerMinute/60.0), 1),
	}
}

func (r *RateLimited) Name() string { return r.inner.Name() }

func (r *RateLimited) Complete(ctx context.Context, req Request) (memory.Message, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return memory.Message{}, fmt.Errorf("request rate limit wait failed: %w", err)
	}
	return r.inner.Complete(ctx, req)
}
