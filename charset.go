package textio

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type charsetEntry struct {
	enc  encoding.Encoding
	name string
}

// charsetCache avoids repeating IANA index lookups for every constructed
// Reader. Using a global xsync.Map makes it concurrent-safe.
var charsetCache = xsync.NewMap[string, charsetEntry]()

// lookupCharset resolves an encoding name against the IANA index and returns
// the encoding together with its canonical name.
func lookupCharset(name string) (charsetEntry, error) {
	name = strings.TrimSpace(name)
	key := strings.ToLower(name)
	if e, ok := charsetCache.Load(key); ok {
		return e, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		// The index returns a nil Encoding for names it knows but has no
		// decoder for; both cases are unsupported here.
		return charsetEntry{}, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}

	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = name
	}

	e := charsetEntry{enc: enc, name: canonical}
	charsetCache.Store(key, e)
	return e, nil
}

// NewCharsetDecoder wraps an x/text Encoding as a Decoder. The encoding's
// decoder substitutes U+FFFD for undecodable input, so structural Results
// surface only for failures that substitution cannot absorb. UTF-8 gets the
// native UTF8Decoder.
func NewCharsetDecoder(enc encoding.Encoding) Decoder {
	if enc == unicode.UTF8 {
		return UTF8Decoder{}
	}

	name := "unknown"
	if n, err := ianaindex.IANA.Name(enc); err == nil {
		name = n
	} else if s, ok := enc.(fmt.Stringer); ok {
		name = s.String()
	}

	return &transformDecoder{t: enc.NewDecoder(), name: name}
}

// NewTransformDecoder wraps an arbitrary transform.Transformer whose output
// is UTF-8 as a Decoder.
func NewTransformDecoder(t transform.Transformer, name string) Decoder {
	return &transformDecoder{t: t, name: name}
}

// transformDecoder adapts a transform.Transformer producing UTF-8 bytes to
// the rune-oriented Decoder contract. Output that does not fit the caller's
// rune window, or an incomplete rune at the end of a transform chunk, is
// held in pending until the next Decode or Flush.
type transformDecoder struct {
	t       transform.Transformer
	name    string
	pending []byte
}

var _ Decoder = (*transformDecoder)(nil)

// Decode fulfills the Decoder interface.
func (d *transformDecoder) Decode(dst []rune, src []byte, final bool) (nDst, nSrc int, res Result) {
	// Deliver output held over from a previous call before transforming more.
	nDst = d.drain(dst)

	bufp := scratchPool.Get().(*[]byte)
	defer scratchPool.Put(bufp)
	scratch := *bufp

	// boost widens the truncated feed when a single encoded unit spans more
	// bytes than the window has room left, which would otherwise stall the
	// loop with no progress.
	boost := 0

	for {
		if nDst == len(dst) {
			if len(d.pending) > 0 || nSrc < len(src) {
				return nDst, nSrc, Overflow
			}
			return nDst, nSrc, Underflow
		}

		// Feed the transformer only about as many bytes as the window has
		// room for runes. Output held back because the window filled up
		// would strand decoded runes inside the adapter while the driver
		// refills from a source that may block.
		allowance := len(dst) - nDst
		if boost > allowance {
			allowance = boost
		}

		rest := src[nSrc:]
		in, f := rest, final
		if len(in) > allowance {
			in, f = in[:allowance], false
		}

		n, consumed, err := d.t.Transform(scratch, in, f)
		nSrc += consumed
		d.pending = append(d.pending, scratch[:n]...)
		nDst += d.drain(dst[nDst:])
		if n > 0 || consumed > 0 {
			boost = 0
		}

		switch {
		case err == nil:
			if len(in) < len(rest) {
				// Truncated feed; keep going with the rest.
				continue
			}
			if len(d.pending) > 0 && nDst == len(dst) {
				return nDst, nSrc, Overflow
			}
			return nDst, nSrc, Underflow

		case errors.Is(err, transform.ErrShortSrc):
			if len(in) < len(rest) {
				if n == 0 && consumed == 0 {
					// The next unit is longer than the allowance.
					boost = 2 * len(in)
				}
				continue
			}
			return nDst, nSrc, Underflow

		case errors.Is(err, transform.ErrShortDst):
			// Scratch filled; drain freed it, go around.

		default:
			return nDst, nSrc, structuralResult(err, len(rest)-consumed)
		}
	}
}

// drain converts pending UTF-8 bytes to runes. An incomplete rune at the
// tail is kept for the next transformer chunk.
func (d *transformDecoder) drain(dst []rune) (n int) {
	for len(d.pending) > 0 && n < len(dst) {
		if !utf8.FullRune(d.pending) {
			break
		}
		r, size := utf8.DecodeRune(d.pending)
		dst[n] = r
		n++
		d.pending = d.pending[size:]
	}
	if len(d.pending) == 0 {
		d.pending = nil
	}
	return n
}

// Flush fulfills the Decoder interface.
func (d *transformDecoder) Flush(dst []rune) int {
	n := d.drain(dst)
	if len(d.pending) > 0 && n < len(dst) {
		// A truncated rune at true end of stream decodes to U+FFFD.
		dst[n] = utf8.RuneError
		n++
		d.pending = nil
	}
	return n
}

// Reset fulfills the Decoder interface.
func (d *transformDecoder) Reset() {
	d.t.Reset()
	d.pending = nil
}

// Name fulfills the Decoder interface.
func (d *transformDecoder) Name() string { return d.name }

// structuralResult maps a transformer error to a structural Result. x/text
// reports unmappable input with a repertoire error that carries the
// replacement byte; anything else is treated as malformed. The span length
// is best effort: the transformer stops at the offending unit, so the run
// starts at the first unconsumed byte.
func structuralResult(err error, remaining int) Result {
	length := remaining
	if length > utf8.UTFMax {
		length = utf8.UTFMax
	}
	if length < 1 {
		length = 1
	}
	var repertoire interface{ Replacement() byte }
	if errors.As(err, &repertoire) {
		return Unmappable(length)
	}
	return Malformed(length)
}
