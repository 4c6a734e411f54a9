package recorder

import (
	"context"
	"sync"
	"testing"
	"time"

	"krxmon/config"
	"krxmon/internal/krx/memorystore"
	"krxmon/pkg/storage/postgres"

	"go.uber.org/zap"
)

// memoryInserter collects records in memory and rejects duplicates the way
// the unique index would.
type memoryInserter struct {
	mu      sync.Mutex
	records []postgres.QuoteRecord
	seen    map[string]bool
}

func newMemoryInserter() *memoryInserter {
	return &memoryInserter{seen: make(map[string]bool)}
}

func (m *memoryInserter) InsertQuote(_ context.Context, record *postgres.QuoteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := record.Name + record.FetchedAt.String()
	if m.seen[key] {
		return postgres.ErrDuplicateQuote
	}
	m.seen[key] = true
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryInserter) all() []postgres.QuoteRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]postgres.QuoteRecord, len(m.records))
	copy(cp, m.records)
	return cp
}

func TestRecorder_FlushArchivesPricedSnapshots(t *testing.T) {
	insts := []config.Instrument{
		{Name: "삼성전자", Code: "005930"},
		{Name: "NAVER", Code: "035420"},
	}
	store := memorystore.NewQuoteStore([]string{"삼성전자", "NAVER"}, 10)

	store.Write("삼성전자", memorystore.Snapshot{
		Price: 74800, HasPrice: true,
		ChangeAbs: 500, ChangePct: 0.67, HasChange: true,
		Trend: memorystore.TrendUp, Status: memorystore.StatusFresh,
		UpdatedAt: time.Now(),
	})
	// NAVER still loading: nothing to archive.

	db := newMemoryInserter()
	r := New(store, insts, time.Second, db, zap.NewNop())

	r.flush(context.Background())

	records := db.all()
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Name != "삼성전자" || records[0].Price != 74800 {
		t.Errorf("record = %+v", records[0])
	}
}

func TestRecorder_DuplicateFlushSkipped(t *testing.T) {
	insts := []config.Instrument{{Name: "삼성전자", Code: "005930"}}
	store := memorystore.NewQuoteStore([]string{"삼성전자"}, 10)

	store.Write("삼성전자", memorystore.Snapshot{
		Price: 74800, HasPrice: true,
		Trend: memorystore.TrendUp, Status: memorystore.StatusFresh,
		UpdatedAt: time.Now(),
	})

	db := newMemoryInserter()
	r := New(store, insts, time.Second, db, zap.NewNop())

	// Two flushes between poll cycles see the same snapshot.
	r.flush(context.Background())
	r.flush(context.Background())

	if got := len(db.all()); got != 1 {
		t.Errorf("records = %d, want 1 (duplicate skipped)", got)
	}
}
