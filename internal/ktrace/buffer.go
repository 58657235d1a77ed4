package ktrace

// chunkSize is the record capacity of one buffer segment.
const chunkSize = 4096

// captureBuffer is an append-only segment list of fixed-size chunks.
// Growth allocates fresh chunks and never moves records already captured,
// so growing between drains cannot lose or reorder anything.
type captureBuffer struct {
	chunks []*chunk
	cur    int // index of the chunk currently being filled
	total  int
}

type chunk struct {
	recs []Record
}

func newCaptureBuffer() *captureBuffer {
	return &captureBuffer{chunks: []*chunk{{recs: make([]Record, 0, chunkSize)}}}
}

func (b *captureBuffer) append(r Record) {
	c := b.chunks[b.cur]
	if len(c.recs) == cap(c.recs) {
		if b.cur == len(b.chunks)-1 {
			b.chunks = append(b.chunks, &chunk{recs: make([]Record, 0, chunkSize)})
		}
		b.cur++
		c = b.chunks[b.cur]
	}
	c.recs = append(c.recs, r)
	b.total++
}

func (b *captureBuffer) len() int {
	return b.total
}

// headroom is the remaining capacity before another allocation is needed.
func (b *captureBuffer) headroom() int {
	n := 0
	for i := b.cur; i < len(b.chunks); i++ {
		n += cap(b.chunks[i].recs) - len(b.chunks[i].recs)
	}
	return n
}

// grow pre-allocates chunks until at least n records of headroom exist.
func (b *captureBuffer) grow(n int) {
	for b.headroom() < n {
		b.chunks = append(b.chunks, &chunk{recs: make([]Record, 0, chunkSize)})
	}
}

// records flattens the segment list in capture order. Only called after the
// capture loop has stopped, so no append races with the copy.
func (b *captureBuffer) records() []Record {
	out := make([]Record, 0, b.total)
	for _, c := range b.chunks {
		out = append(out, c.recs...)
	}
	return out
}
