package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	b := make([]byte, HeaderSize)
	require.NoError(t, PutHeader(b, Header{EntryCount: 3}))

	h, err := ParseHeader(b)
	require.NoError(t, err)
	require.Equal(t, uint32(3), h.EntryCount)
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	b := make([]byte, HeaderSize)
	copy(b, "REGF")
	_, err := ParseHeader(b)
	require.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestParseHeaderRejectsShortBuffer(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestEntryRoundTrip(t *testing.T) {
	b := make([]byte, EntrySize)
	want := Entry{Name: "hello", Offset: 0x50, Size: 1234}
	require.NoError(t, PutEntry(b, want))

	got, err := ParseEntry(b)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestPutEntryRejectsLongName(t *testing.T) {
	b := make([]byte, EntrySize)
	err := PutEntry(b, Entry{Name: "this-name-is-way-too-long-for-the-field"})
	require.ErrorIs(t, err, ErrNameTooLong)
}

func TestPutEntryClearsStaleName(t *testing.T) {
	b := make([]byte, EntrySize)
	require.NoError(t, PutEntry(b, Entry{Name: "longer-name"}))
	require.NoError(t, PutEntry(b, Entry{Name: "x"}))

	got, err := ParseEntry(b)
	require.NoError(t, err)
	require.Equal(t, "x", got.Name)
}

func TestParseDirectory(t *testing.T) {
	table := make([]byte, 2*EntrySize)
	require.NoError(t, PutEntry(table, Entry{Name: "a", Offset: 0x50, Size: 1}))
	require.NoError(t, PutEntry(table[EntrySize:], Entry{Name: "b", Offset: 0x60, Size: 2}))

	entries, err := ParseDirectory(table, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "a", entries[0].Name)
	require.Equal(t, "b", entries[1].Name)

	_, err = ParseDirectory(table, 3)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestAlign(t *testing.T) {
	require.Equal(t, 0, Align(0))
	require.Equal(t, PayloadAlign, Align(1))
	require.Equal(t, PayloadAlign, Align(PayloadAlign))
	require.Equal(t, 2*PayloadAlign, Align(PayloadAlign+1))
}
