package fetcher

import (
	"context"
	"sync"
	"time"

	"krxmon/config"
	"krxmon/internal/krx/memorystore"
	"krxmon/pkg/krx"

	"go.uber.org/zap"
)

// lookbackWindow is how far back daily closes are requested. Ten calendar
// days always covers the last two trading sessions across weekends and
// holiday runs.
const lookbackWindow = 10 * 24 * time.Hour

// MarketDataProvider supplies daily closing prices for one listing.
// An empty result with a nil error means no sessions traded in the range.
type MarketDataProvider interface {
	DailyCloses(ctx context.Context, code string, start, end time.Time) ([]krx.Session, error)
}

// Config holds fetcher timing parameters.
type Config struct {
	Interval   time.Duration // poll cycle period
	MaxRetries int           // attempts per instrument per cycle
	RetryDelay time.Duration // sleep between failed attempts
}

// Fetcher drives the polling loop: once per interval it refreshes every
// configured instrument independently and writes the results into the
// quote store. It is the store's only writer.
type Fetcher struct {
	cfg         Config
	provider    MarketDataProvider
	store       *memorystore.QuoteStore
	instruments []config.Instrument
	logger      *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg Config, provider MarketDataProvider, store *memorystore.QuoteStore,
	instruments []config.Instrument, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		cfg:         cfg,
		provider:    provider,
		store:       store,
		instruments: instruments,
		logger:      logger,
	}
}

// Start launches the polling loop in the background. The first cycle runs
// immediately rather than one interval in.
func (f *Fetcher) Start(ctx context.Context) {
	ctx, f.cancel = context.WithCancel(ctx)

	f.wg.Add(1)
	go f.run(ctx)

	f.logger.Info("quote fetcher started",
		zap.Duration("interval", f.cfg.Interval),
		zap.Int("instruments", len(f.instruments)),
	)
}

// Stop cancels the loop and waits for the current cycle to finish.
// Cancellation is observed inside retry sleeps, so shutdown latency is
// bounded by one retry delay, not a whole cycle.
func (f *Fetcher) Stop(ctx context.Context) error {
	if f.cancel != nil {
		f.cancel()
	}

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		f.logger.Info("quote fetcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fetcher) run(ctx context.Context) {
	defer f.wg.Done()

	ticker := time.NewTicker(f.cfg.Interval)
	defer ticker.Stop()

	f.pollCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.pollCycle(ctx)
		}
	}
}

// pollCycle refreshes every instrument once, sequentially. A failure or
// panic on one instrument never reaches the others or the loop itself.
func (f *Fetcher) pollCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("poll cycle panicked",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()

	start := time.Now()

	for _, inst := range f.instruments {
		if ctx.Err() != nil {
			return
		}

		snap := f.fetchQuote(ctx, inst)
		if err := f.store.Write(inst.Name, snap); err != nil {
			f.logger.Warn("failed to store quote",
				zap.String("name", inst.Name),
				zap.Error(err),
			)
		}
	}

	f.logger.Debug("poll cycle complete",
		zap.Int("instruments", len(f.instruments)),
		zap.Duration("duration", time.Since(start)),
	)
}

// fetchQuote fetches one instrument's recent closes with retry and turns
// the outcome into a snapshot. Provider errors are retried up to the
// configured bound; an empty result is a valid answer and is not retried.
func (f *Fetcher) fetchQuote(ctx context.Context, inst config.Instrument) memorystore.Snapshot {
	end := time.Now()
	begin := end.Add(-lookbackWindow)

	for attempt := 1; ; attempt++ {
		sessions, err := f.provider.DailyCloses(ctx, inst.Code, begin, end)
		if err == nil {
			snap := classify(sessions, time.Now())
			if snap.Status == memorystore.StatusNoData {
				f.logger.Warn("no session data",
					zap.String("name", inst.Name),
					zap.String("code", inst.Code),
					zap.Bool("has_price", snap.HasPrice),
				)
			}
			return snap
		}

		f.logger.Warn("failed to fetch quote",
			zap.String("name", inst.Name),
			zap.String("code", inst.Code),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", f.cfg.MaxRetries),
			zap.Error(err),
		)

		if attempt >= f.cfg.MaxRetries {
			break
		}
		if !sleepCtx(ctx, f.cfg.RetryDelay) {
			break
		}
	}

	// All retries exhausted: degrade to stale and clear prior values.
	return memorystore.Snapshot{Status: memorystore.StatusStale}
}

// classify turns a provider result into a snapshot.
//
//   - two or more sessions: price plus change vs the previous close
//   - exactly one session: price known, no comparison possible
//     (first trading day after a holiday run)
//   - no sessions: market had nothing to report
func classify(sessions []krx.Session, now time.Time) memorystore.Snapshot {
	switch {
	case len(sessions) >= 2:
		latest := sessions[len(sessions)-1].Close
		previous := sessions[len(sessions)-2].Close
		change := latest - previous

		snap := memorystore.Snapshot{
			Price:     latest,
			HasPrice:  true,
			ChangeAbs: change,
			HasChange: true,
			Trend:     memorystore.TrendFromChange(change),
			Status:    memorystore.StatusFresh,
			UpdatedAt: now,
		}
		if previous != 0 {
			snap.ChangePct = float64(change) / float64(previous) * 100
		}
		return snap

	case len(sessions) == 1:
		return memorystore.Snapshot{
			Price:     sessions[0].Close,
			HasPrice:  true,
			Trend:     memorystore.TrendUnknown,
			Status:    memorystore.StatusNoData,
			UpdatedAt: now,
		}

	default:
		return memorystore.Snapshot{Status: memorystore.StatusNoData}
	}
}

// sleepCtx sleeps for d unless ctx is cancelled first.
// Returns false when the sleep was interrupted.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
