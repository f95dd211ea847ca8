// Package rle implements the Elias-gamma-style run-length code used to
// compress a column of {0,1} flags — e.g. the per-line "is this a
// literal or a match" bit emitted alongside each block's op-lists.
package rle

import (
	"math/bits"

	"github.com/basilisk-io/logref/bitio"
	"github.com/basilisk-io/logref/errs"
)

// binaryLength returns the number of bits needed to write n in binary,
// with a floor of 2 so that a run of length 1 still gets a distinguishable
// code (encoded as "01").
func binaryLength(n int) int {
	l := bits.Len(uint(n))
	if l < 2 {
		return 2
	}

	return l
}

// Encode run-length encodes a sequence of {0,1} flags. It returns the
// packed byte buffer and the number of runs (intervals), which the
// caller must store alongside the bytes: the decoder needs it to know
// where the run sequence ends, since trailing zero padding bits are
// otherwise indistinguishable from a run's terminator.
func Encode(flags []int) (encoded []byte, intervalCount int, err error) {
	if len(flags) == 0 {
		return nil, 0, nil
	}

	w := bitio.NewWriter()
	if err := w.Encode(uint32(flags[0]), 1); err != nil {
		return nil, 0, err
	}

	var intervals []int
	run := 1
	for i := 1; i < len(flags); i++ {
		if flags[i] != flags[i-1] {
			intervals = append(intervals, run)
			run = 1
		} else {
			run++
		}
	}
	intervals = append(intervals, run)

	for _, n := range intervals {
		if err := encodeNumber(w, n); err != nil {
			return nil, 0, err
		}
	}
	w.Pack()

	return w.Bytes(), len(intervals), nil
}

// encodeNumber writes n as (binaryLength(n)-2) '1' bits, a separating
// '0', then n itself in binaryLength(n) bits.
func encodeNumber(w *bitio.Writer, n int) error {
	l := binaryLength(n)

	for i := 0; i < l-2; i++ {
		if err := w.Encode(1, 1); err != nil {
			return err
		}
	}
	if err := w.Encode(0, 1); err != nil {
		return err
	}

	return w.Encode(uint32(n), l)
}

// Decode reconstructs the {0,1} flag sequence from encoded bytes given
// the interval count previously returned by Encode.
func Decode(encoded []byte, intervalCount int) ([]int, error) {
	if intervalCount == 0 {
		return nil, nil
	}
	if len(encoded) == 0 {
		return nil, errs.ErrUnderflow
	}

	r := bitio.NewReader(encoded)
	current, err := r.Decode(1)
	if err != nil {
		return nil, err
	}

	var result []int
	for i := 0; i < intervalCount; i++ {
		n, err := decodeNumber(r)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, errs.ErrFormat
		}

		for j := 0; j < n; j++ {
			result = append(result, int(current))
		}
		current ^= 1
	}

	return result, nil
}

func decodeNumber(r *bitio.Reader) (int, error) {
	ones := 0
	for {
		bit, err := r.Decode(1)
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			break
		}
		ones++
	}

	width := ones + 2
	value, err := r.Decode(width)
	if err != nil {
		return 0, err
	}

	return int(value), nil
}
