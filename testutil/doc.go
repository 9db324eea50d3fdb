// Package testutil provides testing utilities for bitvec.
//
// This package is intended for use in tests and benchmarks only. It
// provides a seeded, thread-safe word source and helpers for populating
// vectors with a target density.
//
//	rng := testutil.NewRNG(seed)
//	v := bitvec.MustNew(1 << 16)
//	testutil.FillDensity(v, rng, 0.25)
package testutil
