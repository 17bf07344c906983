package machine

// Device is a memory-mapped peripheral attached to the Bus. Offsets are
// relative to the device base; all access widths are little-endian.
type Device interface {
	Name() string
	Base() uint64
	Size() uint64

	Read8(off uint64) uint8
	Read16(off uint64) uint16
	Read32(off uint64) uint32
	Read64(off uint64) uint64

	Write8(off uint64, v uint8)
	Write16(off uint64, v uint16)
	Write32(off uint64, v uint32)
	Write64(off uint64, v uint64)
}

// blockReader is implemented by devices whose contents can be read as a
// flat byte slice. The bus uses it as a fast path for block transfers.
type blockReader interface {
	Bytes() []byte
}

// blockWriter is implemented by devices whose contents can be mutated as
// a flat byte slice. Read-only devices (the disk window) omit it.
type blockWriter interface {
	MutableBytes() []byte
}

// regs provides zero-valued defaults for the register widths a device
// does not decode. Devices embed it and override what they implement.
type regs struct{}

func (regs) Read8(uint64) uint8   { return 0 }
func (regs) Read16(uint64) uint16 { return 0 }
func (regs) Read32(uint64) uint32 { return 0 }
func (regs) Read64(uint64) uint64 { return 0 }

func (regs) Write8(uint64, uint8)   {}
func (regs) Write16(uint64, uint16) {}
func (regs) Write32(uint64, uint32) {}
func (regs) Write64(uint64, uint64) {}
