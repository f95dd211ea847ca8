// Package bitpack implements fixed-width bit packing over a column of
// non-negative integers. Every value in a slice is packed using the
// minimum bit width that fits the slice's maximum, trading the
// flexibility of a general varint codec for a column that is entirely
// predictable in size given just its length and max: one shared width per
// block rather than per-value tagging, with a one-byte width header
// leading the packed data.
package bitpack

import (
	"math/bits"

	"github.com/basilisk-io/logref/bitio"
	"github.com/basilisk-io/logref/errs"
)

// BitWidth returns the number of bits needed to represent max using
// unsigned binary, with a floor of 1 bit so that an all-zero column
// still encodes each value explicitly. max must be >= 0.
func BitWidth(max int) int {
	if max < 0 {
		return 1
	}
	if max == 0 {
		return 1
	}

	return bits.Len(uint(max))
}

// Encode packs values using the minimum width that fits their maximum.
// values must all be >= 0. An empty slice encodes to an empty byte
// sequence with no header byte.
func Encode(values []int) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}

	max := values[0]
	for _, v := range values {
		if v < 0 {
			return nil, errs.ErrInvalidArgument
		}
		if v > max {
			max = v
		}
	}

	width := BitWidth(max)

	w := bitio.NewWriter()
	if err := w.Encode(uint32(width), 8); err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := w.Encode(uint32(v), width); err != nil {
			return nil, err
		}
	}
	w.Pack()

	return w.Bytes(), nil
}

// Decode unpacks count values previously produced by Encode. count == 0
// returns an empty slice without consuming any input.
func Decode(data []byte, count int) ([]int, error) {
	if count == 0 {
		return nil, nil
	}
	if len(data) == 0 {
		return nil, errs.ErrUnderflow
	}

	r := bitio.NewReader(data)
	width32, err := r.Decode(8)
	if err != nil {
		return nil, err
	}
	width := int(width32)

	values := make([]int, count)
	for i := 0; i < count; i++ {
		v, err := r.Decode(width)
		if err != nil {
			return nil, err
		}
		values[i] = int(v)
	}

	return values, nil
}
