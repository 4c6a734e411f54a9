package memorystore

// historyBuffer is a fixed-capacity ring of price samples. When full, an
// append evicts the oldest point. Not safe for concurrent use on its own;
// the owning instrument state's mutex guards it together with the snapshot.
type historyBuffer struct {
	points []HistoryPoint
	head   int // index of the oldest point
	size   int
}

func newHistoryBuffer(capacity int) *historyBuffer {
	return &historyBuffer{
		points: make([]HistoryPoint, capacity),
	}
}

func (b *historyBuffer) Append(p HistoryPoint) {
	if b.size < len(b.points) {
		b.points[(b.head+b.size)%len(b.points)] = p
		b.size++
		return
	}
	// Full: overwrite the oldest slot and advance.
	b.points[b.head] = p
	b.head = (b.head + 1) % len(b.points)
}

func (b *historyBuffer) Len() int {
	return b.size
}

// Snapshot returns the buffered points oldest first, as a fresh slice.
func (b *historyBuffer) Snapshot() []HistoryPoint {
	out := make([]HistoryPoint, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.points[(b.head+i)%len(b.points)]
	}
	return out
}
