package textio

// stagingBuffer is a fixed-capacity byte window with position/limit
// semantics. Bytes in [pos, limit) have been read from the source but not
// yet decoded; bytes in [0, pos) are already decoded and may be overwritten
// by compact. Invariant: 0 <= pos <= limit <= cap.
type stagingBuffer struct {
	data  []byte
	pos   int
	limit int
}

func newStagingBuffer(capacity int) *stagingBuffer {
	return &stagingBuffer{data: make([]byte, capacity)}
}

func (b *stagingBuffer) capacity() int      { return len(b.data) }
func (b *stagingBuffer) remaining() int     { return b.limit - b.pos }
func (b *stagingBuffer) hasRemaining() bool { return b.pos < b.limit }
func (b *stagingBuffer) full() bool         { return b.limit == len(b.data) }

// window returns the valid, unconsumed bytes.
func (b *stagingBuffer) window() []byte { return b.data[b.pos:b.limit] }

// free returns the writable tail after limit.
func (b *stagingBuffer) free() []byte { return b.data[b.limit:] }

// advance marks n bytes of the window as consumed by the decoder.
func (b *stagingBuffer) advance(n int) { b.pos += n }

// fill extends the window by n freshly read bytes.
func (b *stagingBuffer) fill(n int) { b.limit += n }

// compact moves [pos, limit) to the front of the buffer so the tail becomes
// writable again. Called only when the buffer is full and the decoder still
// reported underflow: the unconsumed bytes are the head of an in-progress
// multi-byte sequence and must survive the refill.
func (b *stagingBuffer) compact() {
	n := copy(b.data, b.data[b.pos:b.limit])
	b.pos = 0
	b.limit = n
}
