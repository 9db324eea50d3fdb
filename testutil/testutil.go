package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/bitvec"
)

// RNG encapsulates a seeded random number generator. It is thread-safe and
// satisfies bitvec.WordSource. Seeding is explicit: the same seed always
// reproduces the same word stream.
type RNG struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the seed the RNG was created with, for reproducing failures.
func (r *RNG) Seed() int64 { return r.seed }

// Uint64 returns the next pseudo-random word.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Intn returns a pseudo-random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random float in [0, 1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillDensity sets each bit of v independently with probability density.
// The realized density converges on the target for large vectors but is
// not exact.
func FillDensity(v *bitvec.Vector, rng *RNG, density float64) {
	v.Reset()
	for i := 0; i < v.Len(); i++ {
		if rng.Float64() < density {
			v.Set(i)
		}
	}
}

// RandomIndices returns n distinct indices in [0, size), shuffled.
func RandomIndices(rng *RNG, n, size int) []int {
	if n > size {
		n = size
	}
	perm := make([]int, size)
	for i := range perm {
		perm[i] = i
	}
	rng.mu.Lock()
	rng.rand.Shuffle(size, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	rng.mu.Unlock()
	return perm[:n]
}
