// Package fetcher wraps the quote client with bounded retries and converts
// exhausted failures into absence.
package fetcher

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"stockbar/internal/models"
	"stockbar/internal/retry"
)

// Client is the single-symbol quote lookup the fetcher retries.
type Client interface {
	Quote(ctx context.Context, symbol string) (models.Quote, error)
}

// Fetcher retries a quote client a fixed number of times with a fixed delay.
type Fetcher struct {
	client      Client
	maxAttempts int
	delay       time.Duration
}

// New creates a fetcher performing up to maxAttempts attempts per symbol
// with the given delay between failed attempts.
func New(client Client, maxAttempts int, delay time.Duration) *Fetcher {
	return &Fetcher{client: client, maxAttempts: maxAttempts, delay: delay}
}

// Fetch returns the quote for symbol, or nil once retries are exhausted.
// Failures are logged and absorbed so callers can treat "no data" uniformly.
func (f *Fetcher) Fetch(ctx context.Context, symbol string) *models.Quote {
	quote, err := retry.Do(ctx, f.maxAttempts, f.delay, func(ctx context.Context) (models.Quote, error) {
		return f.client.Quote(ctx, symbol)
	})
	if err != nil {
		log.WithField("symbol", symbol).WithError(err).Warn("Quote fetch failed after retries")
		return nil
	}
	return &quote
}
