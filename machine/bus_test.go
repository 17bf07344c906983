package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusRoutesByAddress(t *testing.T) {
	b := NewBus(nil)
	ram := NewRAM(0x8000_0000, 0x1000)
	b.Attach(ram)
	b.Attach(NewDisk(0x9000_0000, []byte{0xAA, 0xBB, 0xCC, 0xDD}))

	require.True(t, b.Write32(0x8000_0010, 0xDEADBEEF))
	got, ok := b.Read32(0x8000_0010)
	require.True(t, ok)
	require.Equal(t, uint32(0xDEADBEEF), got)

	d8, ok := b.Read8(0x9000_0001)
	require.True(t, ok)
	require.Equal(t, uint8(0xBB), d8)
}

func TestBusUnmappedAccess(t *testing.T) {
	b := NewBus(nil)
	b.Attach(NewRAM(0x8000_0000, 0x1000))

	_, ok := b.Read8(0x7FFF_FFFF)
	require.False(t, ok)
	_, ok = b.Read64(0x8000_0FFC) // straddles the end of RAM
	require.False(t, ok)
	require.False(t, b.Write8(0x8000_1000, 1))
	require.False(t, b.Write32(0, 1))
}

func TestBusLittleEndian(t *testing.T) {
	b := NewBus(nil)
	b.Attach(NewRAM(0, 16))

	require.True(t, b.Write64(0, 0x1122334455667788))
	lo, ok := b.Read32(0)
	require.True(t, ok)
	require.Equal(t, uint32(0x55667788), lo)
	hi, ok := b.Read32(4)
	require.True(t, ok)
	require.Equal(t, uint32(0x11223344), hi)
}

func TestBusBlockTransfers(t *testing.T) {
	b := NewBus(nil)
	b.Attach(NewRAM(0x8000_0000, 64))

	src := []byte{1, 2, 3, 4, 5}
	require.True(t, b.WriteBytes(0x8000_0008, src))

	dst := make([]byte, 5)
	require.True(t, b.ReadBytes(0x8000_0008, dst))
	require.Equal(t, src, dst)

	// Out-of-range block transfers fail whole, not partially.
	require.False(t, b.WriteBytes(0x8000_003C, src))
	require.False(t, b.ReadBytes(0x8000_003C, dst))
}

func TestBusFill(t *testing.T) {
	b := NewBus(nil)
	ram := NewRAM(0x8000_0000, 32)
	b.Attach(ram)
	for i := range ram.mem {
		ram.mem[i] = 0xFF
	}

	require.True(t, b.Fill(0x8000_0000, 16, 0))
	require.Equal(t, byte(0), ram.mem[15])
	require.Equal(t, byte(0xFF), ram.mem[16])
	require.False(t, b.Fill(0x8000_0010, 17, 0))
}

func TestDiskIsReadOnly(t *testing.T) {
	b := NewBus(nil)
	img := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	b.Attach(NewDisk(0x9000_0000, img))

	// Writes are accepted by the bus (the address is mapped) but ignored.
	require.True(t, b.Write8(0x9000_0000, 0xEE))
	got, ok := b.Read8(0x9000_0000)
	require.True(t, ok)
	require.Equal(t, uint8(1), got)
}
