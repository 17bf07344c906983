// Package vfs is the read-only virtual disk filesystem. The disk is a
// flat image mapped into the physical address space; Mount reads the
// directory once through the bus, and Load copies file payloads into
// RAM. There is no write path.
package vfs

import (
	"errors"
	"fmt"

	"github.com/rvmicro/rvmicro/internal/format"
)

// Entry is one directory entry: a name and the payload's location
// relative to the disk base.
type Entry = format.Entry

// ErrNotFound is returned by Find when no entry matches.
var ErrNotFound = errors.New("vfs: file not found")

// ErrUnmapped is returned when a bus transfer touches an unmapped range.
var ErrUnmapped = errors.New("vfs: address range not mapped")

// Bus is the slice of the system bus the filesystem needs.
type Bus interface {
	ReadBytes(addr uint64, dst []byte) bool
	WriteBytes(addr uint64, src []byte) bool
}

// FS is a mounted filesystem.
type FS struct {
	bus     Bus
	base    uint64
	entries []Entry
}

// Mount validates the image signature at base and reads the directory.
func Mount(bus Bus, base uint64) (*FS, error) {
	hdr := make([]byte, format.HeaderSize)
	if !bus.ReadBytes(base, hdr) {
		return nil, fmt.Errorf("vfs: reading header at %#x: %w", base, ErrUnmapped)
	}
	h, err := format.ParseHeader(hdr)
	if err != nil {
		return nil, fmt.Errorf("vfs: mounting at %#x: %w", base, err)
	}
	// The entry count comes off the image, so prove the claimed table
	// fits inside the disk window before sizing anything from it.
	tableSize := uint64(h.EntryCount) * format.EntrySize
	if tableSize > 0 {
		var last [1]byte
		if !bus.ReadBytes(base+format.HeaderSize+tableSize-1, last[:]) {
			return nil, fmt.Errorf("vfs: directory of %d entries at %#x: %w",
				h.EntryCount, base, format.ErrTruncated)
		}
	}
	table := make([]byte, tableSize)
	if !bus.ReadBytes(base+format.HeaderSize, table) {
		return nil, fmt.Errorf("vfs: reading directory at %#x: %w", base, ErrUnmapped)
	}
	entries, err := format.ParseDirectory(table, h.EntryCount)
	if err != nil {
		return nil, fmt.Errorf("vfs: mounting at %#x: %w", base, err)
	}
	return &FS{bus: bus, base: base, entries: entries}, nil
}

// List returns the directory in on-disk order. The slice is shared;
// callers must not mutate it.
func (fs *FS) List() []Entry { return fs.entries }

// Find returns the entry whose name matches exactly. The scan is linear
// and the first match wins, so a duplicated name shadows later copies.
func (fs *FS) Find(name string) (Entry, error) {
	for _, e := range fs.entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Load copies exactly e.Size payload bytes to the physical address dest.
// The caller guarantees the destination can hold them; no bounds check
// is made against the load window.
func (fs *FS) Load(e Entry, dest uint64) error {
	buf := make([]byte, e.Size)
	if !fs.bus.ReadBytes(fs.base+uint64(e.Offset), buf) {
		return fmt.Errorf("vfs: reading %q payload: %w", e.Name, ErrUnmapped)
	}
	if !fs.bus.WriteBytes(dest, buf) {
		return fmt.Errorf("vfs: loading %q to %#x: %w", e.Name, dest, ErrUnmapped)
	}
	return nil
}
