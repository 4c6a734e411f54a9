package memorystore

import "time"

// Trend classifies price movement since the previous trading session.
type Trend int

const (
	TrendUnknown Trend = iota // no two-session comparison available
	TrendUp
	TrendDown
	TrendFlat
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	case TrendFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// TrendFromChange derives the trend from the sign of a session-over-session
// change. Snapshots must always carry a trend consistent with their change.
func TrendFromChange(change int64) Trend {
	switch {
	case change > 0:
		return TrendUp
	case change < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Status describes how current a snapshot is.
type Status int

const (
	StatusLoading Status = iota // never fetched
	StatusFresh                 // last fetch succeeded with a full comparison
	StatusStale                 // all retries failed this cycle
	StatusNoData                // the market had nothing to report
)

func (s Status) String() string {
	switch s {
	case StatusFresh:
		return "fresh"
	case StatusStale:
		return "stale"
	case StatusNoData:
		return "nodata"
	default:
		return "loading"
	}
}

// Snapshot is the current display-ready state of one instrument.
// Values are copied in and out of the store; a Snapshot held by a caller
// never aliases store state.
//
// Field population by status:
//   - StatusLoading: nothing set
//   - StatusFresh:   price, change, trend, last update
//   - StatusNoData:  either nothing (empty result) or price + last update
//     with TrendUnknown (single session, no previous close)
//   - StatusStale:   nothing set; the failed cycle clears prior values
type Snapshot struct {
	Price     int64 // closing price in won; valid only when HasPrice
	HasPrice  bool
	ChangeAbs int64   // won vs previous session close
	ChangePct float64 // percent vs previous session close
	HasChange bool
	Trend     Trend
	Status    Status
	UpdatedAt time.Time // last successful fetch; zero when none
}

// HistoryPoint is one (timestamp, price) sample for charting.
type HistoryPoint struct {
	At    time.Time
	Price int64
}
