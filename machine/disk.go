package machine

import "github.com/rvmicro/rvmicro/internal/buf"

// Disk is the read-only virtual disk window. The filesystem layout of
// its contents is defined in internal/format; the device itself is just
// a byte-addressable region. Writes are silently ignored.
type Disk struct {
	regs
	base  uint64
	image []byte
}

// NewDisk maps image read-only at base.
func NewDisk(base uint64, image []byte) *Disk {
	return &Disk{base: base, image: image}
}

func (d *Disk) Name() string { return "VirtIO-Disk" }
func (d *Disk) Base() uint64 { return d.base }
func (d *Disk) Size() uint64 { return uint64(len(d.image)) }

// Bytes exposes the image for block reads.
func (d *Disk) Bytes() []byte { return d.image }

func (d *Disk) Read8(off uint64) uint8   { return d.image[off] }
func (d *Disk) Read16(off uint64) uint16 { return buf.U16LE(d.image[off:]) }
func (d *Disk) Read32(off uint64) uint32 { return buf.U32LE(d.image[off:]) }
func (d *Disk) Read64(off uint64) uint64 { return buf.U64LE(d.image[off:]) }
