package vfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvmicro/rvmicro/internal/diskimg"
	"github.com/rvmicro/rvmicro/internal/format"
	"github.com/rvmicro/rvmicro/kernel/vfs"
	"github.com/rvmicro/rvmicro/machine"
)

const loadDest = machine.RAMBase + 0x40_0000

func mount(t *testing.T, files map[string][]byte) (*vfs.FS, *machine.Machine) {
	t.Helper()
	b := &diskimg.Builder{}
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if data, ok := files[name]; ok {
			require.NoError(t, b.Add(name, data))
		}
	}
	image, err := b.Bytes()
	require.NoError(t, err)

	m := machine.New(machine.Config{
		RAMSize:   8 << 20,
		DiskImage: image,
		Clock:     machine.NewStepClock(1),
	})
	fs, err := vfs.Mount(m.Bus, machine.DiskBase)
	require.NoError(t, err)
	return fs, m
}

func TestMountRejectsBadSignature(t *testing.T) {
	m := machine.New(machine.Config{
		RAMSize:   1 << 20,
		DiskImage: []byte("not a filesystem image at all"),
	})
	_, err := vfs.Mount(m.Bus, machine.DiskBase)
	assert.ErrorIs(t, err, format.ErrSignatureMismatch)
}

func TestMountRejectsOverstatedEntryCount(t *testing.T) {
	// A corrupt header claiming the maximum count must fail cleanly,
	// not size the directory table from the lie.
	image := make([]byte, 48)
	require.NoError(t, format.PutHeader(image, format.Header{EntryCount: 0xFFFF_FFFF}))

	m := machine.New(machine.Config{RAMSize: 1 << 20, DiskImage: image})
	_, err := vfs.Mount(m.Bus, machine.DiskBase)
	assert.ErrorIs(t, err, format.ErrTruncated)
}

func TestMountRejectsDirectoryPastDiskEnd(t *testing.T) {
	// Room for one entry, header claims four.
	image := make([]byte, format.HeaderSize+format.EntrySize)
	require.NoError(t, format.PutHeader(image, format.Header{EntryCount: 4}))

	m := machine.New(machine.Config{RAMSize: 1 << 20, DiskImage: image})
	_, err := vfs.Mount(m.Bus, machine.DiskBase)
	assert.ErrorIs(t, err, format.ErrTruncated)
}

func TestMountFailsWithoutDisk(t *testing.T) {
	m := machine.New(machine.Config{RAMSize: 1 << 20})
	_, err := vfs.Mount(m.Bus, machine.DiskBase)
	assert.ErrorIs(t, err, vfs.ErrUnmapped)
}

func TestListPreservesOnDiskOrder(t *testing.T) {
	fs, _ := mount(t, map[string][]byte{
		"alpha": []byte("aaaa"),
		"beta":  []byte("bb"),
		"gamma": []byte("g"),
	})
	entries := fs.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, "beta", entries[1].Name)
	assert.Equal(t, "gamma", entries[2].Name)
}

func TestFindMiss(t *testing.T) {
	fs, _ := mount(t, map[string][]byte{"alpha": []byte("a")})
	_, err := fs.Find("missing")
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestFindIsCaseSensitive(t *testing.T) {
	fs, _ := mount(t, map[string][]byte{"alpha": []byte("a")})
	_, err := fs.Find("Alpha")
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestFindReturnsStoredGeometry(t *testing.T) {
	fs, _ := mount(t, map[string][]byte{
		"alpha": []byte("aaaa"),
		"beta":  []byte("bb"),
	})
	e, err := fs.Find("beta")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), e.Size)
	// alpha's payload starts right after the directory and is padded to
	// the alignment unit; beta follows it.
	first := format.HeaderSize + 2*format.EntrySize
	assert.Equal(t, uint32(format.Align(first+4)), e.Offset)
}

func TestLoadCopiesExactly(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03}
	fs, m := mount(t, map[string][]byte{"alpha": payload})

	// Pre-fill the destination so untouched bytes are detectable.
	require.True(t, m.Bus.Fill(loadDest-8, len(payload)+16, 0x55))

	e, err := fs.Find("alpha")
	require.NoError(t, err)
	require.NoError(t, fs.Load(e, loadDest))

	got := make([]byte, len(payload))
	require.True(t, m.Bus.ReadBytes(loadDest, got))
	assert.Equal(t, payload, got)

	edge := make([]byte, 8)
	require.True(t, m.Bus.ReadBytes(loadDest-8, edge))
	assert.Equal(t, []byte{0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}, edge,
		"bytes before the destination stay untouched")
	require.True(t, m.Bus.ReadBytes(loadDest+uint64(len(payload)), edge))
	assert.Equal(t, []byte{0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}, edge,
		"bytes after the payload stay untouched")
}

func TestLoadToUnmappedDestination(t *testing.T) {
	fs, _ := mount(t, map[string][]byte{"alpha": []byte("aaaa")})
	e, err := fs.Find("alpha")
	require.NoError(t, err)
	assert.ErrorIs(t, fs.Load(e, 0x10), vfs.ErrUnmapped)
}

func TestDuplicateNameFirstWins(t *testing.T) {
	// The builder refuses duplicates, so craft the directory by hand:
	// two entries named "twin" pointing at different payloads.
	image := make([]byte, format.HeaderSize+2*format.EntrySize+32)
	require.NoError(t, format.PutHeader(image, format.Header{EntryCount: 2}))
	off := format.HeaderSize + 2*format.EntrySize
	require.NoError(t, format.PutEntry(image[format.HeaderSize:], format.Entry{
		Name: "twin", Offset: uint32(off), Size: 4,
	}))
	require.NoError(t, format.PutEntry(image[format.HeaderSize+format.EntrySize:], format.Entry{
		Name: "twin", Offset: uint32(off + 16), Size: 4,
	}))
	copy(image[off:], "1111")
	copy(image[off+16:], "2222")

	m := machine.New(machine.Config{RAMSize: 1 << 20, DiskImage: image})
	fs, err := vfs.Mount(m.Bus, machine.DiskBase)
	require.NoError(t, err)

	e, err := fs.Find("twin")
	require.NoError(t, err)
	assert.Equal(t, uint32(off), e.Offset, "the first directory entry shadows the second")
}
