package bitvec

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
)

// ToRoaring converts v into a roaring bitmap for interop with code built on
// compressed bitmaps. It fails when the vector addresses more bits than the
// 32-bit roaring index space.
func (v *Vector) ToRoaring() (*roaring.Bitmap, error) {
	if uint64(v.size) > math.MaxUint32 {
		return nil, fmt.Errorf("vector size %d exceeds the roaring index space", v.size)
	}
	rb := roaring.New()
	for wi, w := range v.words {
		base := uint32(wi << log2WordSize)
		for w != 0 {
			rb.Add(base + uint32(bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}
	return rb, nil
}

// FromRoaring creates a vector of the given size holding the contents of
// rb. Elements of rb at or beyond size are rejected as out of range.
func FromRoaring(rb *roaring.Bitmap, size int) (*Vector, error) {
	v, err := New(size)
	if err != nil {
		return nil, err
	}
	it := rb.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i >= size {
			return nil, &IndexError{Index: i, Size: size}
		}
		v.words[i>>log2WordSize] |= 1 << uint(i&(WordSize-1))
	}
	return v, nil
}
