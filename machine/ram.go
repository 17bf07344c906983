package machine

import "github.com/rvmicro/rvmicro/internal/buf"

// RAM is a flat read-write memory device.
type RAM struct {
	regs
	base uint64
	mem  []byte
}

// NewRAM returns size bytes of zeroed memory mapped at base.
func NewRAM(base uint64, size int) *RAM {
	return &RAM{base: base, mem: make([]byte, size)}
}

func (r *RAM) Name() string { return "DRAM" }
func (r *RAM) Base() uint64 { return r.base }
func (r *RAM) Size() uint64 { return uint64(len(r.mem)) }

// Bytes exposes the backing store for block reads.
func (r *RAM) Bytes() []byte { return r.mem }

// MutableBytes exposes the backing store for block writes.
func (r *RAM) MutableBytes() []byte { return r.mem }

func (r *RAM) Read8(off uint64) uint8   { return r.mem[off] }
func (r *RAM) Read16(off uint64) uint16 { return buf.U16LE(r.mem[off:]) }
func (r *RAM) Read32(off uint64) uint32 { return buf.U32LE(r.mem[off:]) }
func (r *RAM) Read64(off uint64) uint64 { return buf.U64LE(r.mem[off:]) }

func (r *RAM) Write8(off uint64, v uint8)   { r.mem[off] = v }
func (r *RAM) Write16(off uint64, v uint16) { buf.PutU16LE(r.mem[off:], v) }
func (r *RAM) Write32(off uint64, v uint32) { buf.PutU32LE(r.mem[off:], v) }
func (r *RAM) Write64(off uint64, v uint64) { buf.PutU64LE(r.mem[off:], v) }
