// Package matrix provides 64×64 bit-matrix geometry on top of the bitvec
// word-accessor seam.
//
// A Matrix treats the 64 words of a 4096-bit vector as rows: bit c of word
// r is the element at row r, column c. Every transform is implemented with
// word loads, stores and bitwise operations only, so it works against any
// store exposing the seam, plain or atomic.
package matrix

import (
	"github.com/hupe1980/bitvec"
)

// Size is the row and column count of a Matrix.
const Size = 64

// Bits is the number of bits a backing store must address.
const Bits = Size * Size

// WordStore is the word seam a Matrix is built on. Both *bitvec.Vector and
// *bitvec.Concurrent satisfy it.
type WordStore interface {
	Word(wi int) uint64
	SetWord(wi int, w uint64)
	Len() int
}

// Matrix is a 64×64 bit matrix view over a WordStore. It holds no state of
// its own; every operation reads and writes the store.
type Matrix struct {
	s WordStore
}

// New creates a matrix view over s, which must address exactly 4096 bits.
func New(s WordStore) (*Matrix, error) {
	if s.Len() != Bits {
		return nil, &bitvec.SizeError{Expected: Bits, Actual: s.Len()}
	}
	return &Matrix{s: s}, nil
}

// Get returns the element at row r, column c.
func (m *Matrix) Get(r, c int) bool {
	checkCoord(r)
	checkCoord(c)
	return m.s.Word(r)&(1<<uint(c)) != 0
}

// Set stores the element at row r, column c.
func (m *Matrix) Set(r, c int, bit bool) {
	checkCoord(r)
	checkCoord(c)
	w := m.s.Word(r)
	if bit {
		w |= 1 << uint(c)
	} else {
		w &^= 1 << uint(c)
	}
	m.s.SetWord(r, w)
}

// Row returns row r as a word, column 0 in the least significant bit.
func (m *Matrix) Row(r int) uint64 {
	checkCoord(r)
	return m.s.Word(r)
}

// SetRow replaces row r.
func (m *Matrix) SetRow(r int, w uint64) {
	checkCoord(r)
	m.s.SetWord(r, w)
}

// Transpose mirrors the matrix across its main diagonal in place.
func (m *Matrix) Transpose() {
	var a [Size]uint64
	m.load(&a)
	transpose64(&a)
	m.store(&a)
}

// FlipRows reverses the row order (mirror across the horizontal axis).
func (m *Matrix) FlipRows() {
	var a [Size]uint64
	m.load(&a)
	for i, j := 0, Size-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
	m.store(&a)
}

// FlipColumns reverses each row's bit order (mirror across the vertical
// axis).
func (m *Matrix) FlipColumns() {
	var a [Size]uint64
	m.load(&a)
	for i := range a {
		a[i] = reverse64(a[i])
	}
	m.store(&a)
}

// Rotate90 rotates the matrix a quarter turn clockwise in place.
func (m *Matrix) Rotate90() {
	m.FlipRows()
	m.Transpose()
}

// Rotate180 rotates the matrix a half turn in place.
func (m *Matrix) Rotate180() {
	var a [Size]uint64
	m.load(&a)
	for i, j := 0, Size-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = reverse64(a[j]), reverse64(a[i])
	}
	m.store(&a)
}

// Rotate270 rotates the matrix a quarter turn counterclockwise in place.
func (m *Matrix) Rotate270() {
	m.Transpose()
	m.FlipRows()
}

func (m *Matrix) load(a *[Size]uint64) {
	for i := range a {
		a[i] = m.s.Word(i)
	}
}

func (m *Matrix) store(a *[Size]uint64) {
	for i, w := range a {
		m.s.SetWord(i, w)
	}
}

func checkCoord(i int) {
	if i < 0 || i >= Size {
		panic(&bitvec.IndexError{Index: i, Size: Size})
	}
}
