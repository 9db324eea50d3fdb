package bitvec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a vector is created with a
	// non-positive size.
	ErrInvalidSize = errors.New("size must be positive")

	// ErrReadOnly is the panic value raised when a mutator is called on a
	// ReadOnly view.
	ErrReadOnly = errors.New("mutation of read-only vector")
)

// IndexError indicates a bit or word index outside the valid bounds.
//
// Single-bit accessors treat an out-of-range index as a programming error
// and panic with *IndexError, mirroring slice-index semantics. The index is
// validated before any word is touched, so a panicking call never mutates
// state.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Size)
}

// SizeError indicates a binary operation between differently sized vectors
// or cursor operands.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type SizeError struct {
	Expected int
	Actual   int
	cause    error
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *SizeError) Unwrap() error { return e.cause }

func checkIndex(i, size int) {
	if i < 0 || i >= size {
		panic(&IndexError{Index: i, Size: size})
	}
}

func checkRange(from, to, size int) {
	if from < 0 || from > size {
		panic(&IndexError{Index: from, Size: size})
	}
	if to < 0 || to > size {
		panic(&IndexError{Index: to, Size: size})
	}
}

func checkSize(expected, actual int) error {
	if expected != actual {
		return &SizeError{Expected: expected, Actual: actual}
	}
	return nil
}
