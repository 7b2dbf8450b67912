// Package scheduler owns the refresh pipeline: the polling loop, per-symbol
// fetch fan-out with stale-value fallback, snapshot persistence, and the
// debounced loading signal exposed to subscribers.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"stockbar/internal/debounce"
	"stockbar/internal/models"
)

// snapshotKey is where the latest snapshot lives in the store.
const snapshotKey = "snapshot:latest"

// Store is the key-value sink the scheduler persists snapshots to.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Fetcher resolves one symbol to a quote, or nil when no data could be
// obtained.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) *models.Quote
}

// Settings supplies the tracked-symbol list. It is re-read at the start of
// every cycle so preference edits take effect on the next refresh.
type Settings interface {
	TrackedSymbols() []string
}

// Config holds the scheduler's timing knobs.
type Config struct {
	Interval      time.Duration
	DebounceDelay time.Duration
}

// Update is what subscribers receive: the current snapshot together with the
// debounced loading flag.
type Update struct {
	Snapshot models.Snapshot
	Loading  bool
}

// Scheduler drives periodic refresh cycles and publishes the results.
type Scheduler struct {
	store    Store
	fetcher  Fetcher
	settings Settings
	interval time.Duration
	loading  *debounce.Bool

	// gen guards against a superseded slow cycle overwriting the snapshot
	// committed by a faster successor.
	gen atomic.Int64

	mu      sync.Mutex
	current models.Snapshot
	subs    []chan Update
}

// New creates a scheduler and warms its in-memory snapshot from the store,
// so a restart renders the last known values before the first fetch lands.
func New(store Store, fetcher Fetcher, settings Settings, cfg Config) *Scheduler {
	s := &Scheduler{
		store:    store,
		fetcher:  fetcher,
		settings: settings,
		interval: cfg.Interval,
	}
	s.loading = debounce.NewBool(cfg.DebounceDelay, s.publishLoading)

	raw, ok, err := store.Get(snapshotKey)
	if err != nil {
		log.WithError(err).Warn("Failed to read cached snapshot")
		return s
	}
	if !ok {
		return s
	}
	snap, err := models.DecodeSnapshot(raw)
	if err != nil {
		log.WithError(err).Warn("Discarding undecodable cached snapshot")
		return s
	}
	s.current = snap
	log.WithField("quotes", len(snap.Quotes)).Info("Loaded cached snapshot")
	return s
}

// Current returns the latest committed snapshot.
func (s *Scheduler) Current() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Loading returns the debounced loading flag.
func (s *Scheduler) Loading() bool {
	return s.loading.Value()
}

// Subscribe registers a new update channel. Sends never block; a subscriber
// that falls behind misses intermediate updates, not the stream.
func (s *Scheduler) Subscribe() <-chan Update {
	ch := make(chan Update, 8)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Run executes one cycle immediately, then one per interval until ctx is
// cancelled. In-flight fetches are not interrupted beyond ctx cancellation.
func (s *Scheduler) Run(ctx context.Context) {
	s.RunCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.loading.Stop()
			log.Info("Refresh scheduler stopped")
			return
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle performs one refresh across all tracked symbols. Every symbol
// resolves to some quote: fresh, retried, the previous snapshot's value, or
// the default placeholder. The cycle therefore always ends with a complete
// snapshot, never an error.
func (s *Scheduler) RunCycle(ctx context.Context) {
	gen := s.gen.Add(1)
	cycleLog := log.WithField("cycle", uuid.New().String())
	start := time.Now()

	s.loading.Set(true)
	defer s.loading.Set(false)

	symbols := s.settings.TrackedSymbols()
	prev := s.Current()
	cycleLog.WithField("symbols", len(symbols)).Debug("Starting refresh cycle")

	results := make([]models.Quote, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			if quote := s.fetcher.Fetch(ctx, symbol); quote != nil {
				results[i] = *quote
				return
			}
			if quote, ok := prev.FindQuote(symbol); ok {
				cycleLog.WithField("symbol", symbol).Debug("Reusing last known quote")
				results[i] = quote
				return
			}
			results[i] = models.DefaultQuote(symbol)
		}(i, symbol)
	}
	wg.Wait()

	now := time.Now()
	snapshot := models.Snapshot{Quotes: results, LastUpdated: &now}

	if gen != s.gen.Load() {
		cycleLog.Debug("Discarding snapshot of superseded cycle")
		return
	}
	s.commit(snapshot, cycleLog)
	cycleLog.WithField("duration", time.Since(start)).Debug("Refresh cycle completed")
}

func (s *Scheduler) commit(snapshot models.Snapshot, cycleLog *log.Entry) {
	raw, err := models.EncodeSnapshot(snapshot)
	if err != nil {
		cycleLog.WithError(err).Error("Failed to encode snapshot")
	} else if err := s.store.Set(snapshotKey, raw); err != nil {
		cycleLog.WithError(err).Error("Failed to persist snapshot")
	}

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	s.publish(Update{Snapshot: snapshot, Loading: s.loading.Value()})
}

func (s *Scheduler) publishLoading(loading bool) {
	s.publish(Update{Snapshot: s.Current(), Loading: loading})
}

func (s *Scheduler) publish(u Update) {
	s.mu.Lock()
	subs := make([]chan Update, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- u:
		default:
		}
	}
}
