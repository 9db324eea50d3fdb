package bitvec

// ReadOnly is an immutable view over a Vector. Reads delegate to the
// backing vector; every mutator panics with ErrReadOnly before touching any
// word. It is the read-only word-access strategy: the same vector shape
// with writes disallowed instead of plain or atomic.
//
// A ReadOnly does not copy: mutations applied to the backing vector through
// other references remain visible.
type ReadOnly struct {
	v *Vector
}

// NewReadOnly wraps v in an immutable view.
func NewReadOnly(v *Vector) *ReadOnly {
	return &ReadOnly{v: v}
}

// Len returns the number of addressable bits.
func (r *ReadOnly) Len() int { return r.v.Len() }

// Words returns the number of storage words.
func (r *ReadOnly) Words() int { return r.v.Words() }

// Test reports whether bit i is set.
func (r *ReadOnly) Test(i int) bool { return r.v.Test(i) }

// Count returns the number of set bits.
func (r *ReadOnly) Count() int { return r.v.Count() }

// CountRange returns the number of set bits in [from, to).
func (r *ReadOnly) CountRange(from, to int) int { return r.v.CountRange(from, to) }

// Density returns the fraction of set bits.
func (r *ReadOnly) Density() float64 { return r.v.Density() }

// NextSet returns the index of the first set bit at or after i.
func (r *ReadOnly) NextSet(i int) (int, bool) { return r.v.NextSet(i) }

// NextClear returns the index of the first clear bit at or after i.
func (r *ReadOnly) NextClear(i int) (int, bool) { return r.v.NextClear(i) }

// PrevSet returns the index of the last set bit at or before i.
func (r *ReadOnly) PrevSet(i int) (int, bool) { return r.v.PrevSet(i) }

// PrevClear returns the index of the last clear bit at or before i.
func (r *ReadOnly) PrevClear(i int) (int, bool) { return r.v.PrevClear(i) }

// DensityRange returns the fraction of set bits in [from, to).
func (r *ReadOnly) DensityRange(from, to int) float64 { return r.v.DensityRange(from, to) }

// Word returns the word at wi.
func (r *ReadOnly) Word(wi int) uint64 { return r.v.Word(wi) }

// Clone returns a mutable deep copy of the backing vector.
func (r *ReadOnly) Clone() *Vector { return r.v.Clone() }

// Set panics with ErrReadOnly.
func (r *ReadOnly) Set(int) { panic(ErrReadOnly) }

// Clear panics with ErrReadOnly.
func (r *ReadOnly) Clear(int) { panic(ErrReadOnly) }

// Flip panics with ErrReadOnly.
func (r *ReadOnly) Flip(int) { panic(ErrReadOnly) }

// SetWord panics with ErrReadOnly.
func (r *ReadOnly) SetWord(int, uint64) { panic(ErrReadOnly) }
