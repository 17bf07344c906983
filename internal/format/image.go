// Package format describes the on-disk layout of rvmicro virtual disk
// images. The kernel's filesystem and the host-side image builder both
// parse and emit this layout, so it is the single source of truth for
// the contract between them.
package format

import (
	"bytes"
	"fmt"

	"github.com/rvmicro/rvmicro/internal/buf"
)

// A disk image is a header followed by a directory table followed by the
// file payloads:
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------
//	 0x00    4    'R' 'V' 'F' 'S'
//	 0x04    4    u32 directory entry count
//	 0x08    8    reserved, zero
//	 0x10         directory table, count entries of 32 bytes each
//
// Each directory entry:
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------
//	 0x00   24    file name, NUL-padded ASCII
//	 0x18    4    u32 payload offset from the start of the image
//	 0x1C    4    u32 payload size in bytes
//
// All fields are little-endian. Payloads are aligned to PayloadAlign so
// that programs load at a predictable boundary inside the user window.
const (
	// HeaderSize is the fixed image header size in bytes.
	HeaderSize = 16
	// EntrySize is the size of one directory entry in bytes.
	EntrySize = 32
	// NameSize is the fixed width of the entry name field.
	NameSize = 24
	// MaxNameLen is the longest representable name (one NUL is reserved).
	MaxNameLen = NameSize - 1
	// PayloadAlign is the alignment of file payloads within the image.
	PayloadAlign = 16

	entryOffsetField = 0x18
	entrySizeField   = 0x1C
)

// Signature is the image magic at offset 0.
var Signature = []byte{'R', 'V', 'F', 'S'}

// Header is the decoded image header.
type Header struct {
	EntryCount uint32
}

// Entry is one decoded directory entry.
type Entry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// ParseHeader validates and extracts the image header from b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("image header: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:len(Signature)], Signature) {
		return Header{}, fmt.Errorf("image header: %w", ErrSignatureMismatch)
	}
	return Header{EntryCount: buf.U32LE(b[4:])}, nil
}

// ParseEntry decodes one 32-byte directory entry.
func ParseEntry(b []byte) (Entry, error) {
	if len(b) < EntrySize {
		return Entry{}, fmt.Errorf("directory entry: %w", ErrTruncated)
	}
	return Entry{
		Name:   DecodeName(b[:NameSize]),
		Offset: buf.U32LE(b[entryOffsetField:]),
		Size:   buf.U32LE(b[entrySizeField:]),
	}, nil
}

// ParseDirectory decodes the whole directory table of an image whose
// header has already been validated. table must start at the first entry.
func ParseDirectory(table []byte, count uint32) ([]Entry, error) {
	if _, err := buf.CheckListBounds(len(table), 0, int(count), EntrySize); err != nil {
		return nil, fmt.Errorf("directory table: %w", ErrTruncated)
	}
	entries := make([]Entry, 0, count)
	for i := 0; i < int(count); i++ {
		e, err := ParseEntry(table[i*EntrySize:])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// PutHeader encodes a header into b.
func PutHeader(b []byte, h Header) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("image header: %w", ErrTruncated)
	}
	copy(b, Signature)
	buf.PutU32LE(b[4:], h.EntryCount)
	return nil
}

// PutEntry encodes a directory entry into b.
func PutEntry(b []byte, e Entry) error {
	if len(b) < EntrySize {
		return fmt.Errorf("directory entry: %w", ErrTruncated)
	}
	if len(e.Name) > MaxNameLen {
		return fmt.Errorf("directory entry %q: %w", e.Name, ErrNameTooLong)
	}
	for i := 0; i < NameSize; i++ {
		b[i] = 0
	}
	copy(b, e.Name)
	buf.PutU32LE(b[entryOffsetField:], e.Offset)
	buf.PutU32LE(b[entrySizeField:], e.Size)
	return nil
}

// DecodeName extracts the NUL-padded name from a raw name field.
func DecodeName(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

// Align rounds n up to the next multiple of PayloadAlign.
func Align(n int) int {
	return (n + PayloadAlign - 1) &^ (PayloadAlign - 1)
}
