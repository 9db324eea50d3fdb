// Package bitvec provides a fixed-size, word-packed bit vector designed for
// safe parallel mutation and traversal.
//
// A Vector is a compact set of integers in [0, size). Bits are packed into
// 64-bit words, so bulk operations (ranged set/clear/flip, boolean
// combination, population count) run as word-level instructions rather than
// per-bit work.
//
// # Choosing a variant
//
//	v := bitvec.MustNew(1 << 20)            // single-writer, fastest
//	c, _ := bitvec.NewConcurrent(1 << 20)   // lock-free, per-word atomic mutation
//	r := bitvec.NewReadOnly(v)              // immutable view, mutators panic
//
// Concurrent linearizes every word-level mutation with atomic fetch-and-op
// instructions or CAS retry loops; it gives no atomicity across words, so a
// concurrent reader may observe a bulk operation in a torn intermediate
// state.
//
// # Parallel traversal
//
// Cursors decompose an index range into disjoint, word-aligned sub-ranges:
//
//	cur, _ := bitvec.NewOnesCursor(v, 0, v.Len())
//	if half := cur.TrySplit(); half != nil {
//	    // half covers the front of the range, cur the back;
//	    // the two never share a word, so independent goroutines may
//	    // consume them (and even write through them) without locking.
//	}
//
// ForEach drives a cursor across an errgroup for callers that just want the
// parallel loop:
//
//	err := bitvec.ForEach(ctx, cur, runtime.GOMAXPROCS(0), func(i int) error {
//	    return visit(i)
//	})
//
// # Collaborators
//
// The matrix subpackage builds 64×64 bit-matrix geometry on top of the
// Word/SetWord seam, and the codec subpackage serializes vectors as
// little-endian word dumps with optional LZ4/ZSTD compression. ToRoaring and
// FromRoaring convert to and from roaring bitmaps for interop with the wider
// ecosystem.
package bitvec
