package lzhuff

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt is returned when decompressing data that was not produced
	// by this package with the same Config.
	ErrCorrupt = errors.New("lzhuff: corrupt input")

	ErrInvalidConfig = errors.New("lzhuff: invalid configuration")
)

// An OverflowError means a token field does not fit in its bit budget.
// It is returned instead of writing a truncated value.
type OverflowError struct {
	Field string
	Value int
	Bits  int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("lzhuff: %s %d does not fit in %d bits", e.Field, e.Value, e.Bits)
}

// A MismatchError is returned by Verify when decompression does not
// reproduce the original. Index is the first position that differs.
type MismatchError struct {
	Index       int
	OriginalLen int
	DecodedLen  int
}

func (e *MismatchError) Error() string {
	if e.OriginalLen != e.DecodedLen {
		return fmt.Sprintf("lzhuff: round trip mismatch at byte %d (original %d bytes, decompressed %d)", e.Index, e.OriginalLen, e.DecodedLen)
	}
	return fmt.Sprintf("lzhuff: round trip mismatch at byte %d", e.Index)
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
