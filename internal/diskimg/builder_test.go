package diskimg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rvmicro/rvmicro/internal/format"
)

func TestBuildRoundTrip(t *testing.T) {
	var b Builder
	require.NoError(t, b.Add("hello", []byte("hello payload")))
	require.NoError(t, b.Add("fib", bytes.Repeat([]byte{0xAB}, 100)))

	img, err := b.Bytes()
	require.NoError(t, err)

	h, err := format.ParseHeader(img)
	require.NoError(t, err)
	require.Equal(t, uint32(2), h.EntryCount)

	entries, err := format.ParseDirectory(img[format.HeaderSize:], h.EntryCount)
	require.NoError(t, err)
	require.Equal(t, "hello", entries[0].Name)
	require.Equal(t, "fib", entries[1].Name)

	for i, e := range entries {
		require.Zero(t, int(e.Offset)%format.PayloadAlign, "payload %d not aligned", i)
	}
	require.Equal(t, []byte("hello payload"),
		img[entries[0].Offset:entries[0].Offset+entries[0].Size])
	require.Equal(t, bytes.Repeat([]byte{0xAB}, 100),
		img[entries[1].Offset:entries[1].Offset+entries[1].Size])
}

func TestBuildEmptyImage(t *testing.T) {
	var b Builder
	img, err := b.Bytes()
	require.NoError(t, err)

	h, err := format.ParseHeader(img)
	require.NoError(t, err)
	require.Zero(t, h.EntryCount)
}

func TestAddRejectsDuplicate(t *testing.T) {
	var b Builder
	require.NoError(t, b.Add("prog", nil))
	require.ErrorIs(t, b.Add("prog", nil), format.ErrDuplicateName)
}

func TestAddRejectsBadNames(t *testing.T) {
	var b Builder
	require.ErrorIs(t, b.Add("", nil), format.ErrNameTooLong)
	require.ErrorIs(t, b.Add(strings.Repeat("x", format.NameSize), nil), format.ErrNameTooLong)
	// Exactly MaxNameLen is fine.
	require.NoError(t, b.Add(strings.Repeat("x", format.MaxNameLen), nil))
}

func TestDeterministicOutput(t *testing.T) {
	build := func() []byte {
		var b Builder
		require.NoError(t, b.Add("a", []byte{1, 2, 3}))
		require.NoError(t, b.Add("b", []byte{4}))
		img, err := b.Bytes()
		require.NoError(t, err)
		return img
	}
	require.Equal(t, build(), build())
}

func TestWriteTo(t *testing.T) {
	var b Builder
	require.NoError(t, b.Add("p", []byte{9}))

	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(out.Len()), n)
}
