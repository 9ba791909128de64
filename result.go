package textio

import "fmt"

type resultKind uint8

const (
	kindUnderflow resultKind = iota
	kindOverflow
	kindMalformed
	kindUnmappable
)

// Result is the tagged outcome of a single Decode call:
// underflow | overflow | malformed(len) | unmappable(len).
//
// Underflow means the decoder consumed everything it could and needs more
// bytes to complete or start a unit. Overflow means the output window is
// full. Malformed and unmappable carry the byte span of the offending input
// and surface only for conditions the decoder's substitution policy cannot
// absorb; ordinary bad input is replaced with U+FFFD and never reaches a
// Result.
type Result struct {
	kind   resultKind
	length int
}

var (
	// Underflow is the Result for "consumed all input, need more bytes".
	Underflow = Result{kind: kindUnderflow}

	// Overflow is the Result for "output window is full".
	Overflow = Result{kind: kindOverflow}
)

// Malformed returns a Result reporting a structural malformed-input failure
// spanning length bytes.
func Malformed(length int) Result {
	return Result{kind: kindMalformed, length: length}
}

// Unmappable returns a Result reporting an unmappable sequence spanning
// length bytes.
func Unmappable(length int) Result {
	return Result{kind: kindUnmappable, length: length}
}

func (r Result) IsUnderflow() bool  { return r.kind == kindUnderflow }
func (r Result) IsOverflow() bool   { return r.kind == kindOverflow }
func (r Result) IsMalformed() bool  { return r.kind == kindMalformed }
func (r Result) IsUnmappable() bool { return r.kind == kindUnmappable }

// Length returns the byte span carried by a malformed or unmappable Result.
// It is zero for underflow and overflow.
func (r Result) Length() int { return r.length }

// Err translates a structural Result into its error, or nil for
// underflow/overflow.
func (r Result) Err() error {
	switch r.kind {
	case kindMalformed:
		return &MalformedInputError{Length: r.length}
	case kindUnmappable:
		return &UnmappableRuneError{Length: r.length}
	}
	return nil
}

func (r Result) String() string {
	switch r.kind {
	case kindUnderflow:
		return "underflow"
	case kindOverflow:
		return "overflow"
	case kindMalformed:
		return fmt.Sprintf("malformed(%d)", r.length)
	default:
		return fmt.Sprintf("unmappable(%d)", r.length)
	}
}
