package kernel

// Block is the physical address of an allocated block.
type Block uint64

// FreePool is the physical memory manager: a fixed arena of equal-size
// blocks with an explicit index stack tracking the free ones. Alloc and
// Free are O(1), reuse is LIFO, and the pool is touched only from the
// single kernel control flow, so there is no locking.
type FreePool struct {
	base      uint64
	blockSize uint64
	free      []uint32
}

// NewFreePool builds a pool over [base, base+count*blockSize). Indices
// are pushed in address order, so the highest block is handed out first.
func NewFreePool(base, blockSize uint64, count int) *FreePool {
	p := &FreePool{
		base:      base,
		blockSize: blockSize,
		free:      make([]uint32, count),
	}
	for i := range p.free {
		p.free[i] = uint32(i)
	}
	return p
}

// Alloc pops a block from the pool. ok is false when the pool is empty.
func (p *FreePool) Alloc() (Block, bool) {
	n := len(p.free)
	if n == 0 {
		return 0, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	return Block(p.base + uint64(idx)*p.blockSize), true
}

// Free returns a block to the pool. The caller must pass a block that
// came from Alloc and is not already free; the pool does not check, and
// a double free corrupts it.
func (p *FreePool) Free(b Block) {
	p.free = append(p.free, uint32((uint64(b)-p.base)/p.blockSize))
}

// Available reports how many blocks remain.
func (p *FreePool) Available() int { return len(p.free) }
