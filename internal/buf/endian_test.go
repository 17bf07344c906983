package buf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	require.Equal(t, uint16(0x2301), U16LE(data))
	require.Equal(t, uint32(0x67452301), U32LE(data))
	require.Equal(t, uint64(0xefcdab8967452301), U64LE(data))

	short := []byte{0xAA}
	require.Zero(t, U16LE(short))
	require.Zero(t, U32LE(short))
	require.Zero(t, U64LE(short))
}

func TestEndianPutHelpers(t *testing.T) {
	b := make([]byte, 8)

	PutU16LE(b, 0x2301)
	require.Equal(t, []byte{0x01, 0x23}, b[:2])

	PutU32LE(b, 0x67452301)
	require.Equal(t, []byte{0x01, 0x23, 0x45, 0x67}, b[:4])

	PutU64LE(b, 0xefcdab8967452301)
	require.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}, b)

	// Short destinations must be left untouched.
	short := []byte{0xFF}
	PutU16LE(short, 0x1234)
	PutU32LE(short, 0x1234)
	PutU64LE(short, 0x1234)
	require.Equal(t, []byte{0xFF}, short)
}

func TestCheckListBounds(t *testing.T) {
	end, err := CheckListBounds(128, 16, 3, 32)
	require.NoError(t, err)
	require.Equal(t, 112, end)

	_, err = CheckListBounds(128, 16, 4, 32)
	require.Error(t, err)

	_, err = CheckListBounds(128, -1, 1, 32)
	require.Error(t, err)

	_, err = CheckListBounds(128, 0, 1<<40, 1<<40)
	require.Error(t, err)
}

func TestSliceHas(t *testing.T) {
	b := make([]byte, 10)

	got, ok := Slice(b, 2, 8)
	require.True(t, ok)
	require.Len(t, got, 8)

	_, ok = Slice(b, 2, 9)
	require.False(t, ok)

	require.True(t, Has(b, 0, 10))
	require.False(t, Has(b, 10, 1))
	require.False(t, Has(b, -1, 1))
}
