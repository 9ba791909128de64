package textio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagingBufferFillAndAdvance(t *testing.T) {
	b := newStagingBuffer(8)
	assert.Equal(t, 8, b.capacity())
	assert.False(t, b.hasRemaining())
	assert.Equal(t, 8, len(b.free()))

	n := copy(b.free(), []byte{1, 2, 3, 4, 5})
	b.fill(n)
	assert.Equal(t, 5, b.remaining())
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, b.window())
	assert.Equal(t, 3, len(b.free()))

	b.advance(3)
	assert.Equal(t, []byte{4, 5}, b.window())
	assert.True(t, b.hasRemaining())

	b.advance(2)
	assert.False(t, b.hasRemaining())
}

func TestStagingBufferCompact(t *testing.T) {
	b := newStagingBuffer(8)
	n := copy(b.free(), []byte{1, 2, 3, 4, 5, 6, 7, 8})
	b.fill(n)
	require.True(t, b.full())

	// Decoder consumed 6 bytes; the remaining 2 are the head of an
	// in-progress multi-byte sequence.
	b.advance(6)
	b.compact()

	assert.Equal(t, 0, b.pos)
	assert.Equal(t, 2, b.limit)
	assert.Equal(t, []byte{7, 8}, b.window())
	assert.Equal(t, 6, len(b.free()))
	assert.False(t, b.full())
}

func TestStagingBufferCompactEmpty(t *testing.T) {
	b := newStagingBuffer(4)
	n := copy(b.free(), []byte{1, 2, 3, 4})
	b.fill(n)
	b.advance(4)

	b.compact()
	assert.Equal(t, 0, b.pos)
	assert.Equal(t, 0, b.limit)
	assert.Equal(t, 4, len(b.free()))
}
