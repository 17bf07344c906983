package format

import "errors"

var (
	// ErrSignatureMismatch indicates an image had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrNameTooLong indicates a file name exceeds the fixed entry name field.
	ErrNameTooLong = errors.New("format: name too long")
	// ErrDuplicateName indicates two directory entries share a name.
	ErrDuplicateName = errors.New("format: duplicate name")
)
