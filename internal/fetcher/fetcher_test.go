package fetcher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockbar/internal/fetcher"
	"stockbar/internal/models"
)

// scriptedClient fails a fixed number of times before succeeding.
type scriptedClient struct {
	failures int
	calls    int
	quote    models.Quote
}

func (c *scriptedClient) Quote(_ context.Context, symbol string) (models.Quote, error) {
	c.calls++
	if c.calls <= c.failures {
		return models.Quote{}, errors.New("upstream unavailable")
	}
	q := c.quote
	q.Symbol = symbol
	return q, nil
}

func TestFetch_RecoversFromTransientFailures(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{failures: 2, quote: models.Quote{Name: "Spotify"}}
	f := fetcher.New(client, 5, time.Millisecond)

	q := f.Fetch(context.Background(), "SPOT")
	require.NotNil(t, q)
	require.Equal(t, "SPOT", q.Symbol)
	require.Equal(t, "Spotify", q.Name)
	require.Equal(t, 3, client.calls)
}

func TestFetch_ExhaustionIsAbsenceNotError(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{failures: 100}
	f := fetcher.New(client, 5, time.Millisecond)

	require.Nil(t, f.Fetch(context.Background(), "SPOT"))
	require.Equal(t, 5, client.calls)
}

func TestFetch_SingleAttempt(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{failures: 1}
	f := fetcher.New(client, 1, time.Millisecond)

	require.Nil(t, f.Fetch(context.Background(), "SPOT"))
	require.Equal(t, 1, client.calls)
}
