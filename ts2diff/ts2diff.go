// Package ts2diff implements a delta-of-delta signed-integer codec used
// for monotonic-ish numeric columns such as matched-record positions and
// op-list lengths.
//
// Fixed 64-value logical blocks, each storing a 32-bit first value, a
// 32-bit min delta, a 12-bit delta count and an 8-bit bit width, followed
// by delta_count values of bit width bits (each value offset by
// -min_delta so it packs as non-negative), built on bitio.Writer/Reader
// rather than hand-rolled bit math per call site.
package ts2diff

import (
	"math/bits"

	"github.com/basilisk-io/logref/bitio"
	"github.com/basilisk-io/logref/errs"
)

const blockSize = 64

// Encode delta-of-delta encodes a signed integer sequence into blocks of
// up to 64 values each.
func Encode(data []int64) ([]byte, error) {
	w := bitio.NewWriter()

	blockCount := (len(data) + blockSize - 1) / blockSize
	if err := w.Encode(uint32(blockCount), 32); err != nil {
		return nil, err
	}

	for start := 0; start < len(data); start += blockSize {
		end := start + blockSize
		if end > len(data) {
			end = len(data)
		}
		if err := encodeBlock(w, data[start:end]); err != nil {
			return nil, err
		}
		w.Pack()
	}

	return w.Bytes(), nil
}

func encodeBlock(w *bitio.Writer, block []int64) error {
	if len(block) == 0 {
		return errs.ErrInvalidArgument
	}

	if err := w.Encode(uint32(int32(block[0])), 32); err != nil {
		return err
	}

	if len(block) == 1 {
		if err := w.Encode(0, 32); err != nil {
			return err
		}

		return w.Encode(0, 12)
	}

	deltas := make([]int64, len(block)-1)
	for i := 1; i < len(block); i++ {
		deltas[i-1] = block[i] - block[i-1]
	}

	minDelta := deltas[0]
	maxDelta := deltas[0]
	for _, d := range deltas {
		if d < minDelta {
			minDelta = d
		}
		if d > maxDelta {
			maxDelta = d
		}
	}

	spread := maxDelta - minDelta
	if spread < 1 {
		spread = 1
	}
	width := bitWidthFor(spread)

	if err := w.Encode(uint32(int32(minDelta)), 32); err != nil {
		return err
	}
	if err := w.Encode(uint32(len(deltas)), 12); err != nil {
		return err
	}
	if err := w.Encode(uint32(width), 8); err != nil {
		return err
	}

	for _, d := range deltas {
		if err := w.Encode(uint32(d-minDelta), width); err != nil {
			return err
		}
	}

	return nil
}

// bitWidthFor returns the smallest b such that 2^b > spread, floored at 1.
func bitWidthFor(spread int64) int {
	width := bits.Len64(uint64(spread))
	if width < 1 {
		width = 1
	}
	if width > 32 {
		width = 32
	}

	return width
}

// Decode reconstructs the signed integer sequence previously produced by
// Encode.
func Decode(encoded []byte) ([]int64, error) {
	r := bitio.NewReader(encoded)

	blockCount32, err := r.Decode(32)
	if err != nil {
		return nil, err
	}
	blockCount := int(blockCount32)

	var result []int64
	for i := 0; i < blockCount; i++ {
		block, err := decodeBlock(r)
		if err != nil {
			return nil, err
		}
		result = append(result, block...)
	}

	r.Align()

	return result, nil
}

func decodeBlock(r *bitio.Reader) ([]int64, error) {
	r.Align()

	firstRaw, err := r.Decode(32)
	if err != nil {
		return nil, err
	}
	first := int64(int32(firstRaw))

	minDeltaRaw, err := r.Decode(32)
	if err != nil {
		return nil, err
	}
	minDelta := int64(int32(minDeltaRaw))

	deltaCount32, err := r.Decode(12)
	if err != nil {
		return nil, err
	}
	deltaCount := int(deltaCount32)

	if deltaCount == 0 {
		return []int64{first}, nil
	}

	width32, err := r.Decode(8)
	if err != nil {
		return nil, err
	}
	width := int(width32)
	if width < 1 || width > 32 {
		return nil, errs.ErrFormat
	}

	result := make([]int64, 0, deltaCount+1)
	acc := first
	result = append(result, acc)

	for i := 0; i < deltaCount; i++ {
		d, err := r.Decode(width)
		if err != nil {
			return nil, err
		}
		acc += int64(d) + minDelta
		result = append(result, acc)
	}

	return result, nil
}
