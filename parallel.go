package bitvec

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach drains cur across an errgroup, splitting it into up to
// parallelism word-disjoint sub-cursors, each consumed on its own
// goroutine. fn may be called concurrently for different indices but never
// for two indices in the same word from two goroutines at once, so it may
// write to the backing vector through plain word operations.
//
// The first error returned by fn cancels the group; remaining sub-cursors
// finish their current batch and stop. A nil context or parallelism < 1 is
// normalized to sensible defaults.
func ForEach(ctx context.Context, cur Cursor, parallelism int, fn func(i int) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if parallelism < 1 {
		parallelism = 1
	}

	cursors := splitN(cur, parallelism)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for _, c := range cursors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var err error
			c.ForEachRemaining(func(i int) {
				if err != nil {
					return
				}
				err = fn(i)
			})
			return err
		})
	}
	return g.Wait()
}

// splitN splits cur breadth-first until n cursors exist or no cursor will
// split further.
func splitN(cur Cursor, n int) []Cursor {
	cursors := []Cursor{cur}
	for len(cursors) < n {
		split := false
		// Walk by index: each insertion shifts the tail, so a range loop
		// would pair stale elements with stale positions.
		for i := 0; i < len(cursors) && len(cursors) < n; i++ {
			child := cursors[i].TrySplit()
			if child == nil {
				continue
			}
			// Child covers the front of the split range; insert it just
			// before its parent so the slice stays ordered by position.
			cursors = append(cursors, nil)
			copy(cursors[i+1:], cursors[i:])
			cursors[i] = child
			split = true
			i++ // parent shifted to i+1 and already split this pass
		}
		if !split {
			break
		}
	}
	return cursors
}
