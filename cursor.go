package bitvec

import (
	"errors"
	"math/bits"
)

// ErrEmptyRange is returned when a cursor is constructed over an empty
// range. Cursors always start active (position < end).
var ErrEmptyRange = errors.New("cursor range is empty")

// Cursor walks an index range [position, end) and can split itself into
// disjoint, word-aligned halves for parallel consumption.
//
// A cursor is Active while position < end and becomes Exhausted, terminally,
// once the range is drained. Cursors are not safe for concurrent use
// themselves; the point of TrySplit is that two *different* cursors produced
// by it never share an underlying word, so each can be consumed by its own
// goroutine, writing to the backing vector through it, without locking.
type Cursor interface {
	// EstimateSize estimates how many indices remain. It is exact for a
	// range cursor and a density-weighted approximation for filtered ones.
	EstimateSize() int

	// TrySplit carves off the front half of the remaining range into a new
	// cursor and advances this cursor's position to the split point, which
	// is always a multiple of WordSize. It returns nil when the estimated
	// remainder is below the split threshold or the aligned midpoint would
	// not advance.
	TrySplit() Cursor

	// TryAdvance invokes fn with the next index, if any, and reports
	// whether it did.
	TryAdvance(fn func(i int)) bool

	// ForEachRemaining invokes fn with every remaining index in order,
	// exhausting the cursor. It is the batch hot path: the current word is
	// cached and its lowest set bit cleared per match instead of paying the
	// TryAdvance round trip per bit.
	ForEachRemaining(fn func(i int))
}

// splitThreshold is the minimum estimated remainder worth splitting: four
// words, so each half keeps at least one full word.
const splitThreshold = 4 * WordSize

// splitPoint returns the midpoint of [pos, end) rounded down to a word
// boundary, or -1 when the aligned point would not advance past pos. The
// midpoint form avoids overflow for ranges near the top of the int space.
func splitPoint(pos, end int) int {
	mid := pos + (end-pos)/2
	sp := mid &^ (WordSize - 1)
	if sp <= pos {
		return -1
	}
	return sp
}

func checkCursorRange(from, to, bound int) error {
	if from < 0 || from > bound {
		return &IndexError{Index: from, Size: bound}
	}
	if to < 0 || to > bound {
		return &IndexError{Index: to, Size: bound}
	}
	if from >= to {
		return ErrEmptyRange
	}
	return nil
}

// RangeCursor produces every index in [position, end). Its estimate is
// exact, so splits always bisect the remaining range.
type RangeCursor struct {
	pos, end int
}

// NewRangeCursor creates a cursor producing every index in [from, to).
func NewRangeCursor(from, to int) (*RangeCursor, error) {
	if from >= to {
		return nil, ErrEmptyRange
	}
	if from < 0 {
		return nil, &IndexError{Index: from, Size: to}
	}
	return &RangeCursor{pos: from, end: to}, nil
}

// EstimateSize returns the exact number of remaining indices.
func (c *RangeCursor) EstimateSize() int { return c.end - c.pos }

// TrySplit implements Cursor.
func (c *RangeCursor) TrySplit() Cursor {
	if c.EstimateSize() < splitThreshold {
		return nil
	}
	sp := splitPoint(c.pos, c.end)
	if sp < 0 {
		return nil
	}
	child := &RangeCursor{pos: c.pos, end: sp}
	c.pos = sp
	return child
}

// TryAdvance implements Cursor.
func (c *RangeCursor) TryAdvance(fn func(i int)) bool {
	if c.pos >= c.end {
		return false
	}
	i := c.pos
	c.pos++
	fn(i)
	return true
}

// ForEachRemaining implements Cursor.
func (c *RangeCursor) ForEachRemaining(fn func(i int)) {
	for i := c.pos; i < c.end; i++ {
		fn(i)
	}
	c.pos = c.end
}

// filterCursor streams the indices where a derived word stream has a set
// bit, restricted to [pos, end). Ones, zeros and combined cursors all reduce
// to it; only the word function differs.
//
// density is sampled once at construction and inherited unchanged by
// split-off children. Estimates are therefore O(1) but approximate: they
// drift when the backing bits are distributed non-uniformly across the
// range, which skews split balance but never correctness.
type filterCursor struct {
	pos, end int
	word     func(wi int) uint64
	density  float64
}

// NewOnesCursor creates a cursor over the set bits of r in [from, to).
func NewOnesCursor(r WordReader, from, to int) (Cursor, error) {
	if err := checkCursorRange(from, to, r.Len()); err != nil {
		return nil, err
	}
	return &filterCursor{
		pos:     from,
		end:     to,
		word:    r.Word,
		density: readerDensity(r, from, to),
	}, nil
}

// NewZerosCursor creates a cursor over the clear bits of r in [from, to).
func NewZerosCursor(r WordReader, from, to int) (Cursor, error) {
	if err := checkCursorRange(from, to, r.Len()); err != nil {
		return nil, err
	}
	return &filterCursor{
		pos:     from,
		end:     to,
		word:    func(wi int) uint64 { return ^r.Word(wi) },
		density: 1 - readerDensity(r, from, to),
	}, nil
}

// NewCombinedCursor creates a cursor over the indices where op applied to
// the words of a and b yields a set bit, without materializing a third
// vector. The operands must have equal length.
func NewCombinedCursor(a, b WordReader, op BitOp, from, to int) (Cursor, error) {
	if err := checkSize(a.Len(), b.Len()); err != nil {
		return nil, err
	}
	if err := checkCursorRange(from, to, a.Len()); err != nil {
		return nil, err
	}
	return &filterCursor{
		pos:     from,
		end:     to,
		word:    func(wi int) uint64 { return op.word(a.Word(wi), b.Word(wi)) },
		density: op.estimate(readerDensity(a, from, to), readerDensity(b, from, to)),
	}, nil
}

// readerDensity returns the fraction of set bits of r in [from, to).
func readerDensity(r WordReader, from, to int) float64 {
	if from >= to {
		return 0
	}
	n := 0
	rangeWords(from, to, r.Len(), func(wi int, mask uint64) {
		n += bits.OnesCount64(r.Word(wi) & mask)
	})
	return float64(n) / float64(to-from)
}

// EstimateSize returns the cached density scaled to the remaining range.
func (c *filterCursor) EstimateSize() int {
	return int(c.density*float64(c.end-c.pos) + 0.5)
}

// TrySplit implements Cursor.
func (c *filterCursor) TrySplit() Cursor {
	if c.EstimateSize() < splitThreshold {
		return nil
	}
	sp := splitPoint(c.pos, c.end)
	if sp < 0 {
		return nil
	}
	child := &filterCursor{pos: c.pos, end: sp, word: c.word, density: c.density}
	c.pos = sp
	return child
}

// TryAdvance implements Cursor.
func (c *filterCursor) TryAdvance(fn func(i int)) bool {
	for c.pos < c.end {
		wi := c.pos >> log2WordSize
		w := c.word(wi) & highBits(c.pos&(WordSize-1))
		if w != 0 {
			i := wi<<log2WordSize + bits.TrailingZeros64(w)
			if i >= c.end {
				c.pos = c.end
				return false
			}
			c.pos = i + 1
			fn(i)
			return true
		}
		c.pos = (wi + 1) << log2WordSize
	}
	c.pos = c.end
	return false
}

// ForEachRemaining implements Cursor.
func (c *filterCursor) ForEachRemaining(fn func(i int)) {
	pos, end := c.pos, c.end
	for pos < end {
		wi := pos >> log2WordSize
		base := wi << log2WordSize
		w := c.word(wi) & highBits(pos&(WordSize-1))
		for w != 0 {
			i := base + bits.TrailingZeros64(w)
			if i >= end {
				c.pos = end
				return
			}
			fn(i)
			w &= w - 1
		}
		pos = base + WordSize
	}
	c.pos = end
}
