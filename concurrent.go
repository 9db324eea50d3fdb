package bitvec

import (
	"math/bits"
	"sync/atomic"
)

// Concurrent is a bit vector whose word-level mutations are linearizable.
//
// Single-bit and single-word operations use atomic fetch-and-bitwise-op
// instructions where the hardware offers one (set, clear) and CAS retry
// loops everywhere else (flip, masked partial-word writes). Operations on
// the same word are totally ordered; operations spanning several words
// (Fill, Reset, Not, ranged mutators, And/Or/Xor) carry no cross-word
// atomicity, so a concurrent reader may observe a torn intermediate state.
//
// CAS loops are lock-free: they retry only while another writer keeps
// winning the same word, and they never surface a retry to the caller.
type Concurrent struct {
	size  int
	words []uint64
}

// NewConcurrent creates a concurrent vector of the given size with all bits
// clear.
func NewConcurrent(size int) (*Concurrent, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	return &Concurrent{
		size:  size,
		words: make([]uint64, wordsFor(size)),
	}, nil
}

// NewConcurrentFrom creates a concurrent vector holding a copy of v. The
// copy is taken with plain reads; callers that need it must quiesce writers
// to v first.
func NewConcurrentFrom(v *Vector) *Concurrent {
	c := &Concurrent{
		size:  v.size,
		words: make([]uint64, len(v.words)),
	}
	copy(c.words, v.words)
	return c
}

// Len returns the number of addressable bits.
func (c *Concurrent) Len() int { return c.size }

// Words returns the number of storage words.
func (c *Concurrent) Words() int { return len(c.words) }

// Test reports whether bit i is set.
func (c *Concurrent) Test(i int) bool {
	checkIndex(i, c.size)
	w := atomic.LoadUint64(&c.words[i>>log2WordSize])
	return w&(1<<uint(i&(WordSize-1))) != 0
}

// Set sets bit i with a single atomic OR.
func (c *Concurrent) Set(i int) {
	checkIndex(i, c.size)
	atomic.OrUint64(&c.words[i>>log2WordSize], 1<<uint(i&(WordSize-1)))
}

// Clear clears bit i with a single atomic AND.
func (c *Concurrent) Clear(i int) {
	checkIndex(i, c.size)
	atomic.AndUint64(&c.words[i>>log2WordSize], ^(uint64(1) << uint(i&(WordSize-1))))
}

// Flip inverts bit i. There is no fetch-XOR primitive, so it retries a CAS
// until the swap succeeds.
func (c *Concurrent) Flip(i int) {
	checkIndex(i, c.size)
	c.xorWord(i>>log2WordSize, 1<<uint(i&(WordSize-1)))
}

// Add sets bit i and reports whether the call changed its state. Under
// contention it resolves through the fetch-OR's returned old value, so
// exactly one of any number of racing adders observes true.
func (c *Concurrent) Add(i int) bool {
	checkIndex(i, c.size)
	mask := uint64(1) << uint(i&(WordSize-1))
	old := atomic.OrUint64(&c.words[i>>log2WordSize], mask)
	return old&mask == 0
}

// Remove clears bit i and reports whether the call changed its state.
func (c *Concurrent) Remove(i int) bool {
	checkIndex(i, c.size)
	mask := uint64(1) << uint(i&(WordSize-1))
	old := atomic.AndUint64(&c.words[i>>log2WordSize], ^mask)
	return old&mask != 0
}

// TryAdd attempts to set bit i with exactly one CAS. ok reports whether the
// attempt went through (it fails only when another writer changed the word
// mid-flight); changed is meaningful only when ok is true. Callers that
// prefer to handle contention themselves use this instead of Add.
func (c *Concurrent) TryAdd(i int) (changed, ok bool) {
	checkIndex(i, c.size)
	addr := &c.words[i>>log2WordSize]
	mask := uint64(1) << uint(i&(WordSize-1))
	old := atomic.LoadUint64(addr)
	if old&mask != 0 {
		return false, true
	}
	if atomic.CompareAndSwapUint64(addr, old, old|mask) {
		return true, true
	}
	return false, false
}

// TryRemove attempts to clear bit i with exactly one CAS; see TryAdd.
func (c *Concurrent) TryRemove(i int) (changed, ok bool) {
	checkIndex(i, c.size)
	addr := &c.words[i>>log2WordSize]
	mask := uint64(1) << uint(i&(WordSize-1))
	old := atomic.LoadUint64(addr)
	if old&mask == 0 {
		return false, true
	}
	if atomic.CompareAndSwapUint64(addr, old, old&^mask) {
		return true, true
	}
	return false, false
}

// TryFlip attempts to invert bit i with exactly one CAS; see TryAdd.
func (c *Concurrent) TryFlip(i int) (changed, ok bool) {
	checkIndex(i, c.size)
	addr := &c.words[i>>log2WordSize]
	mask := uint64(1) << uint(i&(WordSize-1))
	old := atomic.LoadUint64(addr)
	if atomic.CompareAndSwapUint64(addr, old, old^mask) {
		return true, true
	}
	return false, false
}

func (c *Concurrent) xorWord(wi int, mask uint64) {
	addr := &c.words[wi]
	for {
		old := atomic.LoadUint64(addr)
		if atomic.CompareAndSwapUint64(addr, old, old^mask) {
			return
		}
	}
}

// SetRange sets all bits in [from, to), one atomic OR per word. No-op when
// from >= to.
func (c *Concurrent) SetRange(from, to int) {
	rangeWords(from, to, c.size, func(wi int, mask uint64) {
		atomic.OrUint64(&c.words[wi], mask)
	})
}

// ClearRange clears all bits in [from, to), one atomic AND per word.
func (c *Concurrent) ClearRange(from, to int) {
	rangeWords(from, to, c.size, func(wi int, mask uint64) {
		atomic.AndUint64(&c.words[wi], ^mask)
	})
}

// FlipRange inverts all bits in [from, to), one CAS loop per word.
func (c *Concurrent) FlipRange(from, to int) {
	rangeWords(from, to, c.size, func(wi int, mask uint64) {
		c.xorWord(wi, mask)
	})
}

// CountRange returns the number of set bits in [from, to). Each word is
// read atomically; the range as a whole is not a consistent snapshot.
func (c *Concurrent) CountRange(from, to int) int {
	n := 0
	rangeWords(from, to, c.size, func(wi int, mask uint64) {
		n += bits.OnesCount64(atomic.LoadUint64(&c.words[wi]) & mask)
	})
	return n
}

// Count returns the number of set bits, summed over per-word atomic reads.
func (c *Concurrent) Count() int {
	n := 0
	for wi := range c.words {
		n += bits.OnesCount64(atomic.LoadUint64(&c.words[wi]))
	}
	return n
}

// Density returns the fraction of set bits, in [0, 1].
func (c *Concurrent) Density() float64 {
	return float64(c.Count()) / float64(c.size)
}

// NextSet returns the index of the first set bit at or after i, and whether
// one exists.
func (c *Concurrent) NextSet(i int) (int, bool) {
	checkIndex(i, c.size)
	wi := i >> log2WordSize
	w := atomic.LoadUint64(&c.words[wi]) & highBits(i&(WordSize-1))
	for {
		if w != 0 {
			return wi<<log2WordSize + bits.TrailingZeros64(w), true
		}
		wi++
		if wi >= len(c.words) {
			return 0, false
		}
		w = atomic.LoadUint64(&c.words[wi])
	}
}

// NextClear returns the index of the first clear bit at or after i, and
// whether one exists.
func (c *Concurrent) NextClear(i int) (int, bool) {
	checkIndex(i, c.size)
	wi := i >> log2WordSize
	w := ^atomic.LoadUint64(&c.words[wi]) & highBits(i&(WordSize-1))
	for {
		if w != 0 {
			idx := wi<<log2WordSize + bits.TrailingZeros64(w)
			if idx >= c.size {
				return 0, false
			}
			return idx, true
		}
		wi++
		if wi >= len(c.words) {
			return 0, false
		}
		w = ^atomic.LoadUint64(&c.words[wi])
	}
}

// PrevSet returns the index of the last set bit at or before i, and whether
// one exists.
func (c *Concurrent) PrevSet(i int) (int, bool) {
	checkIndex(i, c.size)
	wi := i >> log2WordSize
	w := atomic.LoadUint64(&c.words[wi]) & lowBits(i&(WordSize-1)+1)
	for {
		if w != 0 {
			return wi<<log2WordSize + WordSize - 1 - bits.LeadingZeros64(w), true
		}
		wi--
		if wi < 0 {
			return 0, false
		}
		w = atomic.LoadUint64(&c.words[wi])
	}
}

// PrevClear returns the index of the last clear bit at or before i, and
// whether one exists.
func (c *Concurrent) PrevClear(i int) (int, bool) {
	checkIndex(i, c.size)
	wi := i >> log2WordSize
	w := ^atomic.LoadUint64(&c.words[wi]) & lowBits(i&(WordSize-1)+1)
	for {
		if w != 0 {
			return wi<<log2WordSize + WordSize - 1 - bits.LeadingZeros64(w), true
		}
		wi--
		if wi < 0 {
			return 0, false
		}
		w = ^atomic.LoadUint64(&c.words[wi])
	}
}

// DensityRange returns the fraction of set bits in [from, to), or 0 for an
// empty range.
func (c *Concurrent) DensityRange(from, to int) float64 {
	if from >= to {
		return 0
	}
	return float64(c.CountRange(from, to)) / float64(to-from)
}

// And combines r into c word by word with atomic ANDs. Cross-word atomicity
// is not provided.
func (c *Concurrent) And(r WordReader) error {
	if err := checkSize(c.size, r.Len()); err != nil {
		return err
	}
	for wi := range c.words {
		atomic.AndUint64(&c.words[wi], r.Word(wi))
	}
	return nil
}

// Or combines r into c word by word with atomic ORs.
func (c *Concurrent) Or(r WordReader) error {
	if err := checkSize(c.size, r.Len()); err != nil {
		return err
	}
	for wi := range c.words {
		atomic.OrUint64(&c.words[wi], r.Word(wi))
	}
	return nil
}

// Xor combines r into c word by word with CAS loops.
func (c *Concurrent) Xor(r WordReader) error {
	if err := checkSize(c.size, r.Len()); err != nil {
		return err
	}
	for wi := range c.words {
		c.xorWord(wi, r.Word(wi))
	}
	return nil
}

// Not complements every bit, one CAS loop per word.
func (c *Concurrent) Not() {
	last := len(c.words) - 1
	for wi := 0; wi < last; wi++ {
		c.xorWord(wi, allOnes)
	}
	c.xorWord(last, hangMask(c.size))
}

// Fill sets every bit, one atomic store per word.
func (c *Concurrent) Fill() {
	last := len(c.words) - 1
	for wi := 0; wi < last; wi++ {
		atomic.StoreUint64(&c.words[wi], allOnes)
	}
	atomic.StoreUint64(&c.words[last], hangMask(c.size))
}

// Reset clears every bit, one atomic store per word.
func (c *Concurrent) Reset() {
	for wi := range c.words {
		atomic.StoreUint64(&c.words[wi], 0)
	}
}

// Word atomically returns the word at wi.
func (c *Concurrent) Word(wi int) uint64 {
	checkIndex(wi, len(c.words))
	return atomic.LoadUint64(&c.words[wi])
}

// SetWord atomically replaces the word at wi. Hanging bits of the final
// word are discarded.
func (c *Concurrent) SetWord(wi int, w uint64) {
	checkIndex(wi, len(c.words))
	if wi == len(c.words)-1 {
		w &= hangMask(c.size)
	}
	atomic.StoreUint64(&c.words[wi], w)
}

// Randomize assigns words drawn from src to the bits in [from, to). Full
// interior words are stored atomically; partial boundary words merge
// through a CAS loop so concurrent writers outside the range are never
// clobbered.
func (c *Concurrent) Randomize(src WordSource, from, to int) {
	rangeWords(from, to, c.size, func(wi int, mask uint64) {
		rnd := src.Uint64() & mask
		if mask == allOnes {
			atomic.StoreUint64(&c.words[wi], rnd)
			return
		}
		addr := &c.words[wi]
		for {
			old := atomic.LoadUint64(addr)
			if atomic.CompareAndSwapUint64(addr, old, old&^mask|rnd) {
				return
			}
		}
	})
}

// Snapshot returns a plain Vector holding a per-word-atomic copy. If c is
// being mutated concurrently the copy does not represent a single instant
// across words.
func (c *Concurrent) Snapshot() *Vector {
	v := &Vector{
		size:  c.size,
		words: make([]uint64, len(c.words)),
	}
	for wi := range c.words {
		v.words[wi] = atomic.LoadUint64(&c.words[wi])
	}
	return v
}
