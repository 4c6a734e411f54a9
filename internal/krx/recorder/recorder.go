package recorder

import (
	"context"
	"errors"
	"time"

	"krxmon/config"
	"krxmon/internal/krx/memorystore"
	"krxmon/pkg/storage/postgres"

	"go.uber.org/zap"
)

// QuoteInserter archives one quote row. Satisfied by *postgres.PostgresClient.
type QuoteInserter interface {
	InsertQuote(ctx context.Context, record *postgres.QuoteRecord) error
}

// Recorder is an archival consumer: on its own cadence it reads the quote
// store through the same read API the presentation layer uses and inserts
// priced snapshots into Postgres. It never feeds anything back into the
// store, so in-memory state stays the only source the monitor runs on.
type Recorder struct {
	store       *memorystore.QuoteStore
	instruments []config.Instrument
	interval    time.Duration
	db          QuoteInserter
	logger      *zap.Logger
}

func New(store *memorystore.QuoteStore, instruments []config.Instrument,
	interval time.Duration, db QuoteInserter, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:       store,
		instruments: instruments,
		interval:    interval,
		db:          db,
		logger:      logger,
	}
}

// Start flushes once per interval until ctx is done.
func (r *Recorder) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.flush(ctx)
			}
		}
	}()
}

// flush archives the current snapshot of every instrument that has a
// price. Re-reads between poll cycles hit the (name, fetched_at) unique
// index and are skipped silently.
func (r *Recorder) flush(ctx context.Context) {
	for _, inst := range r.instruments {
		snap, ok := r.store.ReadOne(inst.Name)
		if !ok || !snap.HasPrice {
			continue
		}

		record, err := postgres.ToQuoteRecord(inst.Name, inst.Code, snap)
		if err != nil {
			r.logger.Warn("failed to convert quote for archival",
				zap.String("name", inst.Name),
				zap.Error(err),
			)
			continue
		}

		insertCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = r.db.InsertQuote(insertCtx, record)
		cancel()

		if err != nil && !errors.Is(err, postgres.ErrDuplicateQuote) {
			r.logger.Warn("failed to insert quote",
				zap.String("name", inst.Name),
				zap.Error(err),
			)
		}
	}
}
