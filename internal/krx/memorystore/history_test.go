package memorystore

import (
	"testing"
	"time"
)

func TestHistoryBuffer_AppendBelowCapacity(t *testing.T) {
	b := newHistoryBuffer(4)

	base := time.Now()
	for i := 0; i < 3; i++ {
		b.Append(HistoryPoint{At: base.Add(time.Duration(i) * time.Minute), Price: int64(100 + i)})
	}

	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	points := b.Snapshot()
	for i, p := range points {
		if p.Price != int64(100+i) {
			t.Errorf("points[%d].Price = %d, want %d", i, p.Price, 100+i)
		}
	}
}

func TestHistoryBuffer_WrapAround(t *testing.T) {
	b := newHistoryBuffer(3)

	for i := 0; i < 8; i++ {
		b.Append(HistoryPoint{Price: int64(i)})
	}

	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	points := b.Snapshot()
	want := []int64{5, 6, 7}
	for i, p := range points {
		if p.Price != want[i] {
			t.Errorf("points[%d].Price = %d, want %d", i, p.Price, want[i])
		}
	}
}

func TestHistoryBuffer_CapacityOne(t *testing.T) {
	b := newHistoryBuffer(1)

	b.Append(HistoryPoint{Price: 1})
	b.Append(HistoryPoint{Price: 2})

	points := b.Snapshot()
	if len(points) != 1 || points[0].Price != 2 {
		t.Errorf("points = %v, want single point with price 2", points)
	}
}
