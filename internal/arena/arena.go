// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

// Package arena implements the block allocator that backs a parsed
// document. Allocations are carved out of large blocks and released
// together when the arena is reset; nothing is freed individually.
package arena

// Default sizing, chosen to hold a typical document without touching
// the heap strategy at all.
const (
	DefaultStaticSize = 32 * 1024
	DefaultBlockSize  = 32 * 1024
	DefaultAlign      = 8
)

// A HeapFunc supplies a backing block of at least size bytes once the
// static block is exhausted. Returning nil or a short block reports
// that no memory is available; the arena surfaces that as a failed
// allocation rather than a partial one.
type HeapFunc func(size int) []byte

func defaultHeap(size int) []byte { return make([]byte, size) }

// An Arena hands out aligned byte ranges. A static block, sized at
// construction, is consumed first; further blocks come from the heap
// strategy, each sized to the larger of the block size and the request
// that forced it. Offsets within a block are kept aligned, so every
// returned range starts on an alignment boundary of its block.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	static []byte   // consumed before any heap block; nil when disabled
	blocks [][]byte // heap blocks, retained until Reset

	cur       []byte // block currently being carved
	next, end int    // unused range of cur

	blockSize int
	align     int // power of two
	heap      HeapFunc
}

// New constructs an arena with the default static and heap block sizes.
func New() *Arena { return NewSize(DefaultStaticSize, DefaultBlockSize) }

// NewSize constructs an arena with an initial block of staticSize bytes
// and subsequent heap blocks of blockSize bytes. A staticSize of zero
// builds an arena with no initial block, forcing every allocation onto
// the heap strategy; Alloc takes the identical path either way.
func NewSize(staticSize, blockSize int) *Arena {
	a := &Arena{
		blockSize: blockSize,
		align:     DefaultAlign,
		heap:      defaultHeap,
	}
	if staticSize > 0 {
		a.static = make([]byte, staticSize)
	}
	a.Reset()
	return a
}

// SetHeap replaces the heap strategy used for blocks beyond the static
// one. A nil f restores the default.
func (a *Arena) SetHeap(f HeapFunc) {
	if f == nil {
		f = defaultHeap
	}
	a.heap = f
}

// SetAlign sets the allocation alignment. n must be a positive power of
// two; the default is 8, the pointer width on the platforms we target.
func (a *Arena) SetAlign(n int) {
	if n <= 0 || n&(n-1) != 0 {
		panic("arena: alignment must be a positive power of two")
	}
	a.align = n
}

// Alloc returns a range of exactly size bytes, or nil if the heap
// strategy cannot supply a block. It never returns a short range.
func (a *Arena) Alloc(size int) []byte {
	if size > a.end-a.next {
		if !a.grow(size) {
			return nil
		}
	}
	p := a.cur[a.next : a.next+size : a.next+size]
	a.next = alignForward(a.next+size, a.align)
	if a.next > a.end {
		a.next = a.end
	}
	return p
}

// Reset releases every heap block and rewinds the arena to its static
// block. All previously returned ranges are invalidated.
func (a *Arena) Reset() {
	a.blocks = nil
	a.cur = a.static
	a.next = 0
	a.end = len(a.static)
}

// HeapBlocks reports how many blocks have been taken from the heap
// strategy since the last Reset.
func (a *Arena) HeapBlocks() int { return len(a.blocks) }

func (a *Arena) grow(minsize int) bool {
	size := a.blockSize
	if size < minsize {
		size = minsize
	}
	size += 2 * a.align // slop so aligning forward never overruns
	b := a.heap(size)
	if len(b) < size {
		return false
	}
	a.blocks = append(a.blocks, b)
	a.cur = b
	a.next = 0
	a.end = len(b)
	return true
}

func alignForward(n, align int) int { return (n + align - 1) &^ (align - 1) }
