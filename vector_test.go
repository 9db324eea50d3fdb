package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
		words   int
	}{
		{name: "one bit", size: 1, words: 1},
		{name: "exactly one word", size: 64, words: 1},
		{name: "one word and one bit", size: 65, words: 2},
		{name: "ten bits", size: 10, words: 1},
		{name: "large", size: 1 << 20, words: 1 << 14},
		{name: "zero", size: 0, wantErr: true},
		{name: "negative", size: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New(tt.size)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.size, v.Len())
			assert.Equal(t, tt.words, v.Words())
			for i := 0; i < min(tt.size, 256); i++ {
				assert.False(t, v.Test(i), "fresh vector has bit %d set", i)
			}
		})
	}
}

func TestSetClearFlip(t *testing.T) {
	v := MustNew(130)

	v.Set(0)
	v.Set(63)
	v.Set(64)
	v.Set(129)
	assert.True(t, v.Test(0))
	assert.True(t, v.Test(63))
	assert.True(t, v.Test(64))
	assert.True(t, v.Test(129))
	assert.False(t, v.Test(1))
	assert.Equal(t, 4, v.Count())

	// Idempotent.
	v.Set(63)
	assert.Equal(t, 4, v.Count())

	v.Clear(63)
	assert.False(t, v.Test(63))
	v.Clear(63)
	assert.Equal(t, 3, v.Count())

	// Flip twice is the identity.
	v.Flip(100)
	assert.True(t, v.Test(100))
	v.Flip(100)
	assert.False(t, v.Test(100))
	assert.Equal(t, 3, v.Count())
}

func TestIndexPanics(t *testing.T) {
	v := MustNew(64)

	for _, i := range []int{-1, 64, 1000} {
		assert.PanicsWithError(t, (&IndexError{Index: i, Size: 64}).Error(), func() { v.Test(i) })
		assert.PanicsWithError(t, (&IndexError{Index: i, Size: 64}).Error(), func() { v.Set(i) })
	}

	// A panicking ranged call must not have mutated anything.
	assert.Panics(t, func() { v.SetRange(10, 100) })
	assert.Equal(t, 0, v.Count())
}

func TestRangedOps(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		from, to int
		want     int
	}{
		{name: "within one word", size: 64, from: 3, to: 17, want: 14},
		{name: "word aligned", size: 256, from: 64, to: 192, want: 128},
		{name: "from zero", size: 100, from: 0, to: 70, want: 70},
		{name: "to size", size: 100, from: 30, to: 100, want: 70},
		{name: "full vector", size: 130, from: 0, to: 130, want: 130},
		{name: "cross word unaligned", size: 200, from: 60, to: 135, want: 75},
		{name: "single bit", size: 64, from: 5, to: 6, want: 1},
		{name: "empty", size: 64, from: 10, to: 10, want: 0},
		{name: "inverted", size: 64, from: 20, to: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustNew(tt.size)

			v.SetRange(tt.from, tt.to)
			assert.Equal(t, tt.want, v.Count())
			assert.Equal(t, tt.want, v.CountRange(tt.from, tt.to))

			// Nothing outside the range was touched.
			if tt.from > 0 {
				assert.Equal(t, 0, v.CountRange(0, tt.from))
			}
			if tt.to < tt.size && tt.to > tt.from {
				assert.Equal(t, 0, v.CountRange(tt.to, tt.size))
			}

			v.ClearRange(tt.from, tt.to)
			assert.Equal(t, 0, v.Count())

			v.FlipRange(tt.from, tt.to)
			assert.Equal(t, tt.want, v.Count())
			v.FlipRange(tt.from, tt.to)
			assert.Equal(t, 0, v.Count())
		})
	}
}

func TestFlipRangePreservesOutside(t *testing.T) {
	v := MustNew(192)
	v.Set(10)
	v.Set(100)
	v.Set(150)

	v.FlipRange(64, 128)

	assert.True(t, v.Test(10))
	assert.True(t, v.Test(150))
	assert.False(t, v.Test(100))
	assert.Equal(t, 2+63, v.Count())
}

func TestCountMatchesCountRange(t *testing.T) {
	v := MustNew(300)
	v.SetRange(17, 203)
	v.Flip(250)
	v.Clear(100)

	assert.Equal(t, v.CountRange(0, v.Len()), v.Count())
}

func TestDensity(t *testing.T) {
	v := MustNew(128)
	assert.Zero(t, v.Density())

	v.SetRange(0, 32)
	assert.InDelta(t, 0.25, v.Density(), 1e-12)
	assert.InDelta(t, float64(v.Count())/float64(v.Len()), v.Density(), 1e-12)

	assert.InDelta(t, 1.0, v.DensityRange(0, 32), 1e-12)
	assert.Zero(t, v.DensityRange(64, 128))
	assert.Zero(t, v.DensityRange(5, 5), "empty range")
}

func TestConcreteScan(t *testing.T) {
	// Size 10 with bits 3 and 7 set.
	v := MustNew(10)
	v.Set(3)
	v.Set(7)

	assert.Equal(t, 2, v.CountRange(0, 10))

	i, ok := v.NextSet(0)
	require.True(t, ok)
	assert.Equal(t, 3, i)

	i, ok = v.NextSet(4)
	require.True(t, ok)
	assert.Equal(t, 7, i)

	_, ok = v.NextSet(8)
	assert.False(t, ok)
}

func TestFillThenClearHalf(t *testing.T) {
	v := MustNew(128)
	v.Fill()
	v.ClearRange(64, 128)
	assert.Equal(t, 64, v.Count())
}

func TestNextSetReproducesAllIndices(t *testing.T) {
	v := MustNew(333)
	want := []int{0, 1, 63, 64, 65, 127, 200, 331, 332}
	for _, i := range want {
		v.Set(i)
	}

	var got []int
	for i := 0; ; {
		j, ok := v.NextSet(i)
		if !ok {
			break
		}
		got = append(got, j)
		if j+1 >= v.Len() {
			break
		}
		i = j + 1
	}
	assert.Equal(t, want, got)
}

func TestNextClear(t *testing.T) {
	v := MustNew(130)
	v.Fill()
	v.Clear(5)
	v.Clear(64)
	v.Clear(129)

	i, ok := v.NextClear(0)
	require.True(t, ok)
	assert.Equal(t, 5, i)

	i, ok = v.NextClear(6)
	require.True(t, ok)
	assert.Equal(t, 64, i)

	i, ok = v.NextClear(65)
	require.True(t, ok)
	assert.Equal(t, 129, i)

	// Hanging bits of the last word must not be reported as clear.
	v.Set(129)
	_, ok = v.NextClear(65)
	assert.False(t, ok)
}

func TestPrevSetPrevClear(t *testing.T) {
	v := MustNew(200)
	v.Set(3)
	v.Set(64)
	v.Set(150)

	i, ok := v.PrevSet(199)
	require.True(t, ok)
	assert.Equal(t, 150, i)

	i, ok = v.PrevSet(149)
	require.True(t, ok)
	assert.Equal(t, 64, i)

	i, ok = v.PrevSet(64)
	require.True(t, ok)
	assert.Equal(t, 64, i, "backward search is inclusive")

	i, ok = v.PrevSet(63)
	require.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = v.PrevSet(2)
	assert.False(t, ok)

	v.Fill()
	v.Clear(70)
	i, ok = v.PrevClear(199)
	require.True(t, ok)
	assert.Equal(t, 70, i)
	_, ok = v.PrevClear(69)
	assert.False(t, ok)
}

func TestBooleanOps(t *testing.T) {
	a := MustNew(130)
	b := MustNew(130)
	a.SetRange(0, 80)
	b.SetRange(40, 120)

	and := a.Clone()
	require.NoError(t, and.And(b))
	assert.Equal(t, 40, and.Count()) // [40,80)

	or := a.Clone()
	require.NoError(t, or.Or(b))
	assert.Equal(t, 120, or.Count()) // [0,120)

	xor := a.Clone()
	require.NoError(t, xor.Xor(b))
	assert.Equal(t, 80, xor.Count()) // [0,40) and [80,120)

	not := a.Clone()
	not.Not()
	assert.Equal(t, 130-80, not.Count())
	not.Not()
	assert.True(t, not.Equal(a), "double complement is the identity")
}

func TestBooleanOpsSizeMismatch(t *testing.T) {
	a := MustNew(64)
	b := MustNew(65)

	var sizeErr *SizeError
	require.ErrorAs(t, a.And(b), &sizeErr)
	assert.Equal(t, 64, sizeErr.Expected)
	assert.Equal(t, 65, sizeErr.Actual)
	require.Error(t, a.Or(b))
	require.Error(t, a.Xor(b))
	require.Error(t, a.CopyFrom(b))

	// The failed calls must not have mutated a.
	assert.Equal(t, 0, a.Count())
}

func TestCopyCloneEqualHash(t *testing.T) {
	a := MustNew(100)
	a.SetRange(10, 60)

	b := a.Clone()
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	b.Flip(0)
	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())

	c := MustNew(100)
	require.NoError(t, c.CopyFrom(a))
	assert.True(t, a.Equal(c))

	// Different sizes are never equal, even when both are empty.
	assert.False(t, MustNew(64).Equal(MustNew(65)))
	assert.NotEqual(t, MustNew(64).Hash(), MustNew(65).Hash())
}

func TestWordSeam(t *testing.T) {
	v := MustNew(70)

	v.SetWord(0, 0xDEADBEEF)
	assert.Equal(t, uint64(0xDEADBEEF), v.Word(0))

	// Hanging bits beyond size 70 are discarded on the last word.
	v.SetWord(1, allOnes)
	assert.Equal(t, uint64(0x3F), v.Word(1))
	assert.Equal(t, 6, v.CountRange(64, 70))

	assert.Panics(t, func() { v.Word(2) })
	assert.Panics(t, func() { v.SetWord(-1, 0) })
}

type fixedSource struct{ w uint64 }

func (s fixedSource) Uint64() uint64 { return s.w }

func TestRandomize(t *testing.T) {
	v := MustNew(192)
	v.Fill()

	v.Randomize(fixedSource{w: 0}, 60, 130)

	// Inside the range every bit took the generated value.
	assert.Equal(t, 0, v.CountRange(60, 130))
	// Boundary words outside the range are untouched.
	assert.Equal(t, 60, v.CountRange(0, 60))
	assert.Equal(t, 62, v.CountRange(130, 192))

	v.Randomize(fixedSource{w: allOnes}, 0, 192)
	assert.Equal(t, 192, v.Count())

	// No-op when from >= to.
	v.Randomize(fixedSource{w: 0}, 100, 100)
	assert.Equal(t, 192, v.Count())
}
