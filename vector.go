package bitvec

import (
	"math/bits"
)

// Vector is a fixed-size, word-packed bit vector.
//
// The zero value is not usable; construct with New or MustNew. Size is
// immutable after construction. A Vector is safe for any number of
// concurrent readers; writers require external coordination unless they
// operate through disjoint, word-aligned cursors (see Cursor) or switch to
// Concurrent.
//
// Bits in the final word beyond Len() ("hanging bits") are kept zero by
// every mutator, so aggregate reads (Count, Equal, Hash) never need a
// normalization pass.
type Vector struct {
	size  int
	words []uint64
}

// New creates a vector of the given size with all bits clear.
func New(size int) (*Vector, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	return &Vector{
		size:  size,
		words: make([]uint64, wordsFor(size)),
	}, nil
}

// MustNew is like New but panics on an invalid size. It simplifies
// package-level variables and tests.
func MustNew(size int) *Vector {
	v, err := New(size)
	if err != nil {
		panic(err)
	}
	return v
}

// Len returns the number of addressable bits.
func (v *Vector) Len() int { return v.size }

// Words returns the number of storage words.
func (v *Vector) Words() int { return len(v.words) }

// Test reports whether bit i is set.
func (v *Vector) Test(i int) bool {
	checkIndex(i, v.size)
	return v.words[i>>log2WordSize]&(1<<uint(i&(WordSize-1))) != 0
}

// Set sets bit i.
func (v *Vector) Set(i int) {
	checkIndex(i, v.size)
	v.words[i>>log2WordSize] |= 1 << uint(i&(WordSize-1))
}

// Clear clears bit i.
func (v *Vector) Clear(i int) {
	checkIndex(i, v.size)
	v.words[i>>log2WordSize] &^= 1 << uint(i&(WordSize-1))
}

// Flip inverts bit i.
func (v *Vector) Flip(i int) {
	checkIndex(i, v.size)
	v.words[i>>log2WordSize] ^= 1 << uint(i&(WordSize-1))
}

func (v *Vector) rangeWords(from, to int, fn func(wi int, mask uint64)) {
	rangeWords(from, to, v.size, fn)
}

// SetRange sets all bits in [from, to). It is a no-op when from >= to.
func (v *Vector) SetRange(from, to int) {
	v.rangeWords(from, to, func(wi int, mask uint64) {
		v.words[wi] |= mask
	})
}

// ClearRange clears all bits in [from, to). It is a no-op when from >= to.
func (v *Vector) ClearRange(from, to int) {
	v.rangeWords(from, to, func(wi int, mask uint64) {
		v.words[wi] &^= mask
	})
}

// FlipRange inverts all bits in [from, to). It is a no-op when from >= to.
func (v *Vector) FlipRange(from, to int) {
	v.rangeWords(from, to, func(wi int, mask uint64) {
		v.words[wi] ^= mask
	})
}

// CountRange returns the number of set bits in [from, to).
func (v *Vector) CountRange(from, to int) int {
	n := 0
	v.rangeWords(from, to, func(wi int, mask uint64) {
		n += bits.OnesCount64(v.words[wi] & mask)
	})
	return n
}

// Count returns the number of set bits.
func (v *Vector) Count() int {
	n := 0
	for _, w := range v.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Density returns the fraction of set bits, in [0, 1].
func (v *Vector) Density() float64 {
	return float64(v.Count()) / float64(v.size)
}

// DensityRange returns the fraction of set bits in [from, to), or 0 for an
// empty range.
func (v *Vector) DensityRange(from, to int) float64 {
	if from >= to {
		return 0
	}
	return float64(v.CountRange(from, to)) / float64(to-from)
}

// NextSet returns the index of the first set bit at or after i, and whether
// one exists.
func (v *Vector) NextSet(i int) (int, bool) {
	checkIndex(i, v.size)
	wi := i >> log2WordSize
	w := v.words[wi] & highBits(i&(WordSize-1))
	for {
		if w != 0 {
			return wi<<log2WordSize + bits.TrailingZeros64(w), true
		}
		wi++
		if wi >= len(v.words) {
			return 0, false
		}
		w = v.words[wi]
	}
}

// NextClear returns the index of the first clear bit at or after i, and
// whether one exists. It searches the bitwise complement, excluding hanging
// bits.
func (v *Vector) NextClear(i int) (int, bool) {
	checkIndex(i, v.size)
	wi := i >> log2WordSize
	w := ^v.words[wi] & highBits(i&(WordSize-1))
	for {
		if w != 0 {
			idx := wi<<log2WordSize + bits.TrailingZeros64(w)
			if idx >= v.size {
				return 0, false
			}
			return idx, true
		}
		wi++
		if wi >= len(v.words) {
			return 0, false
		}
		w = ^v.words[wi]
	}
}

// PrevSet returns the index of the last set bit at or before i, and whether
// one exists.
func (v *Vector) PrevSet(i int) (int, bool) {
	checkIndex(i, v.size)
	wi := i >> log2WordSize
	w := v.words[wi] & lowBits(i&(WordSize-1) + 1)
	for {
		if w != 0 {
			return wi<<log2WordSize + WordSize - 1 - bits.LeadingZeros64(w), true
		}
		wi--
		if wi < 0 {
			return 0, false
		}
		w = v.words[wi]
	}
}

// PrevClear returns the index of the last clear bit at or before i, and
// whether one exists.
func (v *Vector) PrevClear(i int) (int, bool) {
	checkIndex(i, v.size)
	wi := i >> log2WordSize
	w := ^v.words[wi] & lowBits(i&(WordSize-1) + 1)
	for {
		if w != 0 {
			return wi<<log2WordSize + WordSize - 1 - bits.LeadingZeros64(w), true
		}
		wi--
		if wi < 0 {
			return 0, false
		}
		w = ^v.words[wi]
	}
}

// And replaces v with v AND o, word by word.
func (v *Vector) And(o *Vector) error {
	if err := checkSize(v.size, o.size); err != nil {
		return err
	}
	for wi := range v.words {
		v.words[wi] &= o.words[wi]
	}
	return nil
}

// Or replaces v with v OR o, word by word.
func (v *Vector) Or(o *Vector) error {
	if err := checkSize(v.size, o.size); err != nil {
		return err
	}
	for wi := range v.words {
		v.words[wi] |= o.words[wi]
	}
	return nil
}

// Xor replaces v with v XOR o, word by word.
func (v *Vector) Xor(o *Vector) error {
	if err := checkSize(v.size, o.size); err != nil {
		return err
	}
	for wi := range v.words {
		v.words[wi] ^= o.words[wi]
	}
	return nil
}

// Not complements every bit in place.
func (v *Vector) Not() {
	for wi := range v.words {
		v.words[wi] = ^v.words[wi]
	}
	v.words[len(v.words)-1] &= hangMask(v.size)
}

// Fill sets every bit.
func (v *Vector) Fill() {
	for wi := range v.words {
		v.words[wi] = allOnes
	}
	v.words[len(v.words)-1] &= hangMask(v.size)
}

// Reset clears every bit.
func (v *Vector) Reset() {
	clear(v.words)
}

// CopyFrom replaces the word contents of v with those of o.
func (v *Vector) CopyFrom(o *Vector) error {
	if err := checkSize(v.size, o.size); err != nil {
		return err
	}
	copy(v.words, o.words)
	return nil
}

// Clone returns a deep copy.
func (v *Vector) Clone() *Vector {
	c := &Vector{
		size:  v.size,
		words: make([]uint64, len(v.words)),
	}
	copy(c.words, v.words)
	return c
}

// Equal reports whether v and o have the same size and the same bits set.
// Vectors of different sizes are never equal.
func (v *Vector) Equal(o *Vector) bool {
	if v.size != o.size {
		return false
	}
	for wi, w := range v.words {
		if w != o.words[wi] {
			return false
		}
	}
	return true
}

// Hash returns an FNV-1a hash over the size and word contents. Equal vectors
// hash identically.
func (v *Vector) Hash() uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	mix := func(x uint64) {
		for s := 0; s < 64; s += 8 {
			h ^= (x >> uint(s)) & 0xff
			h *= prime64
		}
	}
	mix(uint64(v.size))
	for _, w := range v.words {
		mix(w)
	}
	return h
}

// Word returns the word holding bits [wi*64, wi*64+64). It is the read half
// of the accessor seam the matrix and codec subpackages build on.
func (v *Vector) Word(wi int) uint64 {
	checkIndex(wi, len(v.words))
	return v.words[wi]
}

// SetWord replaces the word at wi. Hanging bits of the final word are
// discarded.
func (v *Vector) SetWord(wi int, w uint64) {
	checkIndex(wi, len(v.words))
	if wi == len(v.words)-1 {
		w &= hangMask(v.size)
	}
	v.words[wi] = w
}

// Randomize assigns words drawn from src to the bits in [from, to), masking
// partial boundary words exactly as SetRange does. It is a no-op when
// from >= to.
func (v *Vector) Randomize(src WordSource, from, to int) {
	v.rangeWords(from, to, func(wi int, mask uint64) {
		v.words[wi] = v.words[wi]&^mask | src.Uint64()&mask
	})
}
