package machine

import (
	"io"
	"log/slog"
	"sort"
)

// Bus is the system interconnect. It routes physical addresses to the
// device mapped at that address and exposes typed reads and writes plus
// block transfer helpers.
//
// Every accessor reports ok=false for unmapped addresses instead of
// panicking; the CPU turns that into an access fault and the kernel
// treats it as a bug.
type Bus struct {
	devices []Device
	log     *slog.Logger
}

// NewBus returns an empty bus. log may be nil.
func NewBus(log *slog.Logger) *Bus {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bus{log: log}
}

// Attach registers a device. Devices are kept sorted by base address for
// lookup; overlapping ranges are a wiring bug and are resolved in favor
// of the earlier-sorted device.
func (b *Bus) Attach(d Device) {
	b.devices = append(b.devices, d)
	sort.Slice(b.devices, func(i, j int) bool {
		return b.devices[i].Base() < b.devices[j].Base()
	})
	b.log.Debug("bus: attached device",
		"name", d.Name(),
		"base", d.Base(),
		"size", d.Size())
}

// find returns the device mapped at addr and the offset into it. The
// width of the access must be checked by the caller via the returned
// remaining size.
func (b *Bus) find(addr uint64, width uint64) (Device, uint64, bool) {
	i := sort.Search(len(b.devices), func(i int) bool {
		return b.devices[i].Base()+b.devices[i].Size() > addr
	})
	if i == len(b.devices) {
		return nil, 0, false
	}
	d := b.devices[i]
	if addr < d.Base() || addr+width > d.Base()+d.Size() {
		return nil, 0, false
	}
	return d, addr - d.Base(), true
}

// IsMapped reports whether [addr, addr+n) is backed by a single device.
func (b *Bus) IsMapped(addr, n uint64) bool {
	_, _, ok := b.find(addr, n)
	return ok
}

func (b *Bus) Read8(addr uint64) (uint8, bool) {
	d, off, ok := b.find(addr, 1)
	if !ok {
		return 0, false
	}
	return d.Read8(off), true
}

func (b *Bus) Read16(addr uint64) (uint16, bool) {
	d, off, ok := b.find(addr, 2)
	if !ok {
		return 0, false
	}
	return d.Read16(off), true
}

func (b *Bus) Read32(addr uint64) (uint32, bool) {
	d, off, ok := b.find(addr, 4)
	if !ok {
		return 0, false
	}
	return d.Read32(off), true
}

func (b *Bus) Read64(addr uint64) (uint64, bool) {
	d, off, ok := b.find(addr, 8)
	if !ok {
		return 0, false
	}
	return d.Read64(off), true
}

func (b *Bus) Write8(addr uint64, v uint8) bool {
	d, off, ok := b.find(addr, 1)
	if !ok {
		return false
	}
	d.Write8(off, v)
	return true
}

func (b *Bus) Write16(addr uint64, v uint16) bool {
	d, off, ok := b.find(addr, 2)
	if !ok {
		return false
	}
	d.Write16(off, v)
	return true
}

func (b *Bus) Write32(addr uint64, v uint32) bool {
	d, off, ok := b.find(addr, 4)
	if !ok {
		return false
	}
	d.Write32(off, v)
	return true
}

func (b *Bus) Write64(addr uint64, v uint64) bool {
	d, off, ok := b.find(addr, 8)
	if !ok {
		return false
	}
	d.Write64(off, v)
	return true
}

// ReadBytes fills dst from [addr, addr+len(dst)). The whole range must
// map to one device.
func (b *Bus) ReadBytes(addr uint64, dst []byte) bool {
	if len(dst) == 0 {
		return true
	}
	d, off, ok := b.find(addr, uint64(len(dst)))
	if !ok {
		return false
	}
	if br, ok := d.(blockReader); ok {
		copy(dst, br.Bytes()[off:])
		return true
	}
	for i := range dst {
		dst[i] = d.Read8(off + uint64(i))
	}
	return true
}

// WriteBytes copies src to [addr, addr+len(src)). The whole range must
// map to one device.
func (b *Bus) WriteBytes(addr uint64, src []byte) bool {
	if len(src) == 0 {
		return true
	}
	d, off, ok := b.find(addr, uint64(len(src)))
	if !ok {
		return false
	}
	if bw, ok := d.(blockWriter); ok {
		copy(bw.MutableBytes()[off:], src)
		return true
	}
	for i, v := range src {
		d.Write8(off+uint64(i), v)
	}
	return true
}

// Fill sets [addr, addr+n) to v. The whole range must map to one device.
func (b *Bus) Fill(addr uint64, n int, v byte) bool {
	if n <= 0 {
		return true
	}
	d, off, ok := b.find(addr, uint64(n))
	if !ok {
		return false
	}
	if bw, ok := d.(blockWriter); ok {
		mem := bw.MutableBytes()[off : off+uint64(n)]
		for i := range mem {
			mem[i] = v
		}
		return true
	}
	for i := 0; i < n; i++ {
		d.Write8(off+uint64(i), v)
	}
	return true
}
