package textio

import "unicode/utf8"

// Decoder is a stateful, variable-width charset decoder. It may need several
// bytes to produce one rune and may hold the unconsumed tail of an
// in-progress multi-byte sequence across calls.
//
// Decode consumes bytes from src and writes runes to dst, returning how much
// of each was used and a tagged Result. The final flag marks the true end of
// the stream; it lets the decoder resolve sequences that are only complete
// in light of end-of-input. Ordinary malformed or unmappable input is
// replaced with U+FFFD; malformed/unmappable Results are reserved for
// structural failures the substitution policy cannot absorb.
//
// Flush writes any pending runes buffered inside the decoder to dst and
// returns how many were written. Reset returns the decoder to its initial
// state, discarding partial sequences. Name reports the canonical charset
// name.
type Decoder interface {
	Decode(dst []rune, src []byte, final bool) (nDst, nSrc int, res Result)
	Flush(dst []rune) int
	Reset()
	Name() string
}

// UTF8Decoder is a Decoder for UTF-8. It is stateless: an incomplete
// multi-byte sequence is left unconsumed in src and reported as underflow.
// Invalid bytes are substituted with U+FFFD, one replacement per byte.
type UTF8Decoder struct{}

var _ Decoder = UTF8Decoder{}

// Decode fulfills the Decoder interface.
func (UTF8Decoder) Decode(dst []rune, src []byte, final bool) (nDst, nSrc int, res Result) {
	for nSrc < len(src) {
		if nDst == len(dst) {
			return nDst, nSrc, Overflow
		}
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size <= 1 {
			if !final && !utf8.FullRune(src[nSrc:]) {
				// Possible prefix of a multi-byte sequence.
				return nDst, nSrc, Underflow
			}
			// Invalid byte. Substitute and keep going.
			size = 1
		}
		dst[nDst] = r
		nDst++
		nSrc += size
	}
	return nDst, nSrc, Underflow
}

// Flush fulfills the Decoder interface. A UTF8Decoder never buffers output.
func (UTF8Decoder) Flush(dst []rune) int { return 0 }

// Reset fulfills the Decoder interface.
func (UTF8Decoder) Reset() {}

// Name fulfills the Decoder interface.
func (UTF8Decoder) Name() string { return "UTF-8" }
