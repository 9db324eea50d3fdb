package matrix

import "math/bits"

// transpose64 transposes a 64×64 bit matrix held as 64 row words, column 0
// in the least significant bit. It is the classic block-swap transpose:
// successive passes exchange 32×32, 16×16, ... 1×1 sub-blocks across the
// diagonal using shift-xor-mask swaps, 6 passes in total.
func transpose64(a *[64]uint64) {
	j := 32
	m := uint64(0x00000000FFFFFFFF)
	for j != 0 {
		// k runs over the rows whose block sits above the diagonal:
		// row indices with bit j clear.
		for k := 0; k < 64; k = (k + j + 1) &^ j {
			t := (a[k]>>uint(j) ^ a[k+j]) & m
			a[k+j] ^= t
			a[k] ^= t << uint(j)
		}
		j >>= 1
		m ^= m << uint(j)
	}
}

func reverse64(w uint64) uint64 {
	return bits.Reverse64(w)
}
