// Package diskimg builds rvmicro virtual disk images. The kernel's
// filesystem only reads images; this package is the host-side producer
// of the format described in internal/format.
package diskimg

import (
	"fmt"
	"io"
	"os"

	"github.com/rvmicro/rvmicro/internal/format"
)

// File is one file to place on the image.
type File struct {
	Name string
	Data []byte
}

// Builder accumulates files and serializes them into an image.
// The zero value is ready to use.
type Builder struct {
	files []File
}

// Add appends a file to the image. Names must fit the fixed directory
// name field and be unique; the kernel tolerates duplicates (first match
// wins) but the builder rejects them so images are unambiguous.
func (b *Builder) Add(name string, data []byte) error {
	if len(name) == 0 || len(name) > format.MaxNameLen {
		return fmt.Errorf("diskimg: add %q: %w", name, format.ErrNameTooLong)
	}
	for _, f := range b.files {
		if f.Name == name {
			return fmt.Errorf("diskimg: add %q: %w", name, format.ErrDuplicateName)
		}
	}
	b.files = append(b.files, File{Name: name, Data: data})
	return nil
}

// AddFile reads path from the host filesystem and adds it under name.
func (b *Builder) AddFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("diskimg: %w", err)
	}
	return b.Add(name, data)
}

// Len returns the number of files added so far.
func (b *Builder) Len() int { return len(b.files) }

// Bytes serializes the image. Output is deterministic: directory entries
// appear in insertion order and payloads are laid out in the same order,
// each aligned to format.PayloadAlign.
func (b *Builder) Bytes() ([]byte, error) {
	tableEnd := format.HeaderSize + len(b.files)*format.EntrySize
	total := format.Align(tableEnd)
	offsets := make([]int, len(b.files))
	for i, f := range b.files {
		offsets[i] = total
		total = format.Align(total + len(f.Data))
	}

	img := make([]byte, total)
	if err := format.PutHeader(img, format.Header{EntryCount: uint32(len(b.files))}); err != nil {
		return nil, err
	}
	for i, f := range b.files {
		entry := format.Entry{
			Name:   f.Name,
			Offset: uint32(offsets[i]),
			Size:   uint32(len(f.Data)),
		}
		if err := format.PutEntry(img[format.HeaderSize+i*format.EntrySize:], entry); err != nil {
			return nil, err
		}
		copy(img[offsets[i]:], f.Data)
	}
	return img, nil
}

// WriteTo serializes the image into w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	img, err := b.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(img)
	return int64(n), err
}
