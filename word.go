package bitvec

// WordSize is the number of bits packed into one storage word.
const WordSize = 64

const (
	log2WordSize = 6
	allOnes      = ^uint64(0)
)

// wordsFor returns the number of words needed to hold size bits.
func wordsFor(size int) int {
	return (size + WordSize - 1) >> log2WordSize
}

// highBits returns a mask of bits [n, 64). n must be in [0, 63]; the callers
// below derive n from an index mod 64, so a shift by the full word width
// never happens.
func highBits(n int) uint64 {
	return allOnes << uint(n)
}

// lowBits returns a mask of bits [0, n) for n in [1, 64]. The n == 64 case
// is handled explicitly rather than through shift wraparound.
func lowBits(n int) uint64 {
	if n >= WordSize {
		return allOnes
	}
	return (uint64(1) << uint(n)) - 1
}

// hangMask returns the mask that keeps only valid bits of the final word of
// a vector with the given size.
func hangMask(size int) uint64 {
	return lowBits(size - (wordsFor(size)-1)*WordSize)
}

// rangeWords visits the words overlapping [from, to) of a vector with the
// given size and hands each one to fn together with the mask of in-range
// bits. It is the shared skeleton of every ranged operation, on both the
// plain and the atomic variant. Bounds are validated before fn is invoked,
// so a panicking call never touches a word.
func rangeWords(from, to, size int, fn func(wi int, mask uint64)) {
	if from >= to {
		return
	}
	checkRange(from, to, size)

	first := from >> log2WordSize
	last := (to - 1) >> log2WordSize
	fm := highBits(from & (WordSize - 1))
	lm := lowBits(to - last*WordSize)

	if first == last {
		fn(first, fm&lm)
		return
	}
	fn(first, fm)
	for wi := first + 1; wi < last; wi++ {
		fn(wi, allOnes)
	}
	fn(last, lm)
}

// WordSource supplies pseudo-random words on demand. *math/rand.Rand and
// *testutil.RNG both satisfy it. Seeding is the caller's concern; the
// library never consults global entropy.
type WordSource interface {
	Uint64() uint64
}

// WordReader is the read half of the word-accessor seam. Vector, Concurrent
// and ReadOnly all satisfy it; cursors and the matrix and codec subpackages
// are built against it rather than a concrete vector type.
type WordReader interface {
	// Word returns the word holding bits [wi*64, wi*64+64).
	Word(wi int) uint64
	// Words returns the number of words.
	Words() int
	// Len returns the number of addressable bits.
	Len() int
}
