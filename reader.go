package textio

import (
	"io"
	"sync"

	"golang.org/x/text/encoding"
)

const (
	// defaultBufSize is the staging buffer capacity, matching the common 8K
	// stream reader default.
	defaultBufSize = 8192

	minBufSize = 16

	// maxConsecutiveEmptyReads bounds retries against a source that keeps
	// returning (0, nil), mirroring bufio.
	maxConsecutiveEmptyReads = 100
)

// Reader turns a byte stream into a rune stream. Bytes read from the source
// are staged in a fixed-capacity buffer and converted to runes by a Decoder
// as the caller asks for them, so multi-byte sequences split across source
// chunks decode correctly. io.EOF is the end-of-stream signal.
//
// A Reader is safe for concurrent use: a single mutex guards every
// operation. Reads may block on the underlying source, except that once a
// call has produced at least one rune and the source reports no bytes
// pending, the call returns what it has rather than blocking for more.
type Reader struct {
	mu  sync.Mutex
	src io.Reader
	dec Decoder
	buf *stagingBuffer
	eof bool
}

// NewReader creates a Reader decoding UTF-8, the process default.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderDecoder(r, UTF8Decoder{})
}

// NewReaderSize creates a UTF-8 Reader with a caller-chosen staging buffer
// capacity. The capacity is rounded up to a multiple of 16; sizes below 16
// cannot hold a full encoded unit and are rejected.
func NewReaderSize(r io.Reader, size int) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	if size < minBufSize {
		return nil, ErrSizeTooSmall
	}
	return newReader(r, UTF8Decoder{}, Roundup(size, minBufSize)), nil
}

// NewReaderEncoding creates a Reader decoding the named charset. The name is
// resolved against the IANA index; unknown names fail with
// ErrUnsupportedEncoding.
func NewReaderEncoding(r io.Reader, name string) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	e, err := lookupCharset(name)
	if err != nil {
		return nil, err
	}
	return newReader(r, NewCharsetDecoder(e.enc), defaultBufSize), nil
}

// NewReaderCharset creates a Reader decoding the given x/text Encoding.
func NewReaderCharset(r io.Reader, enc encoding.Encoding) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	if enc == nil {
		return nil, ErrNilDecoder
	}
	return newReader(r, NewCharsetDecoder(enc), defaultBufSize), nil
}

// NewReaderDecoder creates a Reader driving the given Decoder directly.
func NewReaderDecoder(r io.Reader, d Decoder) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	if d == nil {
		return nil, ErrNilDecoder
	}
	return newReader(r, d, defaultBufSize), nil
}

func newReader(r io.Reader, d Decoder, size int) *Reader {
	return &Reader{src: r, dec: d, buf: newStagingBuffer(size)}
}

// Read reads up to len(p) runes into p. It returns the number of runes read
// and io.EOF once the source is exhausted and all staged bytes are decoded.
func (r *Reader) Read(p []rune) (int, error) {
	return r.ReadRunes(p, 0, len(p))
}

// ReadRune reads and returns a single rune, or io.EOF at end of stream.
func (r *Reader) ReadRune() (rune, error) {
	var buf [1]rune
	if _, err := r.ReadRunes(buf[:], 0, 1); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadRunes reads up to length runes into buf starting at off. A zero
// length returns 0 immediately without touching the source or the decoder.
// The window is validated before any I/O: a nil buf with nonzero length or
// an out-of-bounds off/length fails with ErrInvalidRange.
//
// The call blocks until at least one rune is produced, the source is
// exhausted (io.EOF), or an error occurs. It never blocks for more once
// partial progress exists and the source reports nothing pending.
func (r *Reader) ReadRunes(buf []rune, off, length int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.src == nil {
		return 0, ErrClosed
	}
	if off < 0 || length < 0 || off > len(buf)-length {
		return 0, ErrInvalidRange
	}
	if length == 0 {
		return 0, nil
	}

	out := buf[off : off+length]
	produced := 0
	emptyReads := 0
	res := Underflow

	// The staging buffer or the decoder may hold leftovers from a previous
	// call; the first decode pass serves those before the source is touched.
	needInput := false

	for produced < length {
		if needInput {
			if r.eof {
				// The source already signalled exhaustion; never re-query it.
				break
			}

			if n, known := r.available(); known && n == 0 && produced > 0 {
				// Partial progress and nothing pending: return what we have
				// instead of blocking.
				break
			}

			k, err := r.src.Read(r.buf.free())
			if k > 0 {
				r.buf.fill(k)
				needInput = false
				emptyReads = 0
			}
			if err == io.EOF {
				r.eof = true
				if k == 0 {
					break
				}
			} else if err != nil {
				return produced, err
			} else if k == 0 {
				if produced > 0 {
					// Partial progress; hand it back rather than blocking
					// on a source with nothing to give.
					break
				}
				// (0, nil) with nothing produced yet; retry rather than
				// reporting a false end of stream.
				emptyReads++
				if emptyReads >= maxConsecutiveEmptyReads {
					return produced, io.ErrNoProgress
				}
				continue
			}
		}

		nDst, nSrc, dres := r.dec.Decode(out[produced:], r.buf.window(), false)
		r.buf.advance(nSrc)
		produced += nDst
		res = dres

		if !res.IsUnderflow() {
			break
		}
		// Underflow: the decoder wants more bytes. If the buffer is full the
		// unconsumed tail of an in-progress sequence is blocking the refill;
		// compact to make room.
		if r.buf.full() {
			r.buf.compact()
		}
		needInput = true
	}

	if res.IsUnderflow() && r.eof && produced < length {
		// Final pass: end-of-input lets the decoder resolve sequences that
		// are only complete at true end of stream, then flush pending output.
		nDst, nSrc, dres := r.dec.Decode(out[produced:], r.buf.window(), true)
		r.buf.advance(nSrc)
		produced += nDst
		res = dres
		produced += r.dec.Flush(out[produced:])
		r.dec.Reset()
	}

	if err := res.Err(); err != nil {
		return produced, err
	}
	if produced == 0 {
		return 0, io.EOF
	}
	return produced, nil
}

// Ready reports whether the next read will not block: either undecoded bytes
// are staged or the source reports bytes pending. If the source cannot
// answer, Ready reports false.
func (r *Reader) Ready() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.src == nil {
		return false, ErrClosed
	}
	if r.buf.hasRemaining() {
		return true, nil
	}
	n, known := r.available()
	return known && n > 0, nil
}

// Encoding returns the canonical name of the active charset, or "" once the
// Reader is closed.
func (r *Reader) Encoding() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.src == nil {
		return ""
	}
	return r.dec.Name()
}

// Close resets and releases the decoder and closes the source if it is an
// io.Closer. Close is idempotent; every other operation fails with
// ErrClosed afterwards.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.src == nil {
		return nil
	}
	if r.dec != nil {
		r.dec.Reset()
		r.dec = nil
	}
	src := r.src
	r.src = nil
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// available is the best-effort non-blocking probe. known is false when the
// source cannot answer, including when its own availability query fails;
// the driver treats unknown as "attempt the read anyway", never as "stop".
func (r *Reader) available() (n int, known bool) {
	switch s := r.src.(type) {
	case interface{ Available() (int, error) }:
		n, err := s.Available()
		if err != nil {
			return 0, false
		}
		return n, true
	case interface{ Available() int }:
		return s.Available(), true
	case interface{ Buffered() int }:
		return s.Buffered(), true
	}
	return 0, false
}
