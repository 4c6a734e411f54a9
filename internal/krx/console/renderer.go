package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"krxmon/config"
	"krxmon/internal/krx/memorystore"
	"krxmon/pkg/krx"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer is the console presentation mode: it reads the quote store on
// its own ticker and prints one line per instrument. It never blocks the
// fetcher; a read costs one snapshot copy.
type Renderer struct {
	store       *memorystore.QuoteStore
	instruments []config.Instrument
	interval    time.Duration
	out         io.Writer
	printer     *message.Printer
}

func New(store *memorystore.QuoteStore, instruments []config.Instrument,
	interval time.Duration, out io.Writer) *Renderer {
	return &Renderer{
		store:       store,
		instruments: instruments,
		interval:    interval,
		out:         out,
		printer:     message.NewPrinter(language.Korean),
	}
}

// Start renders immediately and then once per interval until ctx is done.
func (r *Renderer) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.render()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.render()
			}
		}
	}()
}

func (r *Renderer) render() {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== %s ===\n", time.Now().In(krx.KST).Format("2006-01-02 15:04:05")))
	for _, inst := range r.instruments {
		snap, ok := r.store.ReadOne(inst.Name)
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%-10s %s\n", inst.Name, r.formatLine(snap)))
	}

	fmt.Fprint(r.out, b.String())
}

func (r *Renderer) formatLine(snap memorystore.Snapshot) string {
	switch snap.Status {
	case memorystore.StatusLoading:
		return "로딩 중..."
	case memorystore.StatusStale:
		return "조회 실패"
	case memorystore.StatusNoData:
		if !snap.HasPrice {
			return "데이터 없음 (장 마감 또는 휴장일)"
		}
		return r.printer.Sprintf("%d원  전일 데이터 없음", snap.Price)
	}

	return r.printer.Sprintf("%d원  %+d원 (%+.2f%%) %s  %s",
		snap.Price,
		snap.ChangeAbs,
		snap.ChangePct,
		trendMark(snap.Trend),
		snap.UpdatedAt.In(krx.KST).Format("15:04:05"),
	)
}

func trendMark(t memorystore.Trend) string {
	switch t {
	case memorystore.TrendUp:
		return "▲"
	case memorystore.TrendDown:
		return "▼"
	case memorystore.TrendFlat:
		return "-"
	default:
		return "?"
	}
}
