// Package ratelimit provides client-side request throttling for AI
// provider APIs, with backoff on 429 responses.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Provider identifies an AI API for rate limiting purposes.
type Provider string

const (
	// ProviderOpenAI is the OpenAI API.
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is the Anthropic API.
	ProviderAnthropic Provider = "anthropic"
	// ProviderOllama is a local Ollama instance.
	ProviderOllama Provider = "ollama"
)

// Config holds rate limiting configuration for a provider.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultLimits provides conservative defaults for each provider.
// These are well below the hosted providers' actual limits so that a
// single user never hits quota errors under normal use.
var DefaultLimits = map[Provider]Config{
	ProviderOpenAI:    {RequestsPerSecond: 3.0, BurstSize: 5},
	ProviderAnthropic: {RequestsPerSecond: 2.0, BurstSize: 4},
	ProviderOllama:    {RequestsPerSecond: 20.0, BurstSize: 40}, // Local, no quota
}

// Limiter throttles API requests using a token bucket, with an
// additional backoff window set when the provider returns 429.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// New creates a limiter with the defaults for the specified provider.
func New(provider Provider) *Limiter {
	cfg, ok := DefaultLimits[provider]
	if !ok {
		// Default fallback
		cfg = Config{RequestsPerSecond: 2.0, BurstSize: 4}
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a limiter with custom configuration.
func NewWithConfig(cfg Config) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate
// limit. It also respects any backoff period set by RecordRateLimitError.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return l.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period after a 429 response.
// retryAfterSeconds comes from the Retry-After header when present.
func (l *Limiter) RecordRateLimitError(retryAfterSeconds int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if retryAfterSeconds <= 0 {
		retryAfterSeconds = 30
	}
	l.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// Allow reports whether a request can be made immediately without blocking.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return l.limiter.Allow()
}
