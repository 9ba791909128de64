package textio

import "sync"

// scratchSize is the size of the intermediate UTF-8 buffers the transform
// adapter decodes into before converting to runes. 4KB covers common chunk
// sizes without re-allocation.
const scratchSize = 4096

// scratchPool reuses those buffers across Decode calls to reduce GC
// pressure; a Reader may issue many small reads.
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, scratchSize)
		return &b
	},
}
