package bitio

import (
	"os"

	"github.com/basilisk-io/logref/compress"
	"github.com/basilisk-io/logref/errs"
)

// Reader consumes variable-width unsigned integers from a byte buffer in
// the same most-significant-bit-first order Writer produces.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	data    []byte
	bytePos int
	bitPos  uint // 0-7, bit offset within data[bytePos]
}

// NewReader wraps data for bit-level reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Decode consumes width bits in MSB-first order and returns the unsigned
// value. width must be in [1, 32]. Reading past the buffer end returns
// ErrUnderflow.
func (r *Reader) Decode(width int) (uint32, error) {
	if width < 1 || width > 32 {
		return 0, errs.ErrInvalidArgument
	}

	var value uint32
	for i := 0; i < width; i++ {
		bit, err := r.readBit()
		if err != nil {
			return 0, err
		}
		value = (value << 1) | uint32(bit)
	}

	return value, nil
}

func (r *Reader) readBit() (byte, error) {
	if r.bytePos >= len(r.data) {
		return 0, errs.ErrUnderflow
	}

	bit := (r.data[r.bytePos] >> (7 - r.bitPos)) & 1
	r.bitPos++
	if r.bitPos == 8 {
		r.bitPos = 0
		r.bytePos++
	}

	return bit, nil
}

// Align discards bits until the next byte boundary.
func (r *Reader) Align() {
	if r.bitPos != 0 {
		r.bitPos = 0
		r.bytePos++
	}
}

// IsAligned reports whether the reader sits on a byte boundary.
func (r *Reader) IsAligned() bool {
	return r.bitPos == 0
}

// Remaining returns the number of whole bytes not yet consumed, not
// counting a partially-read byte.
func (r *Reader) Remaining() int {
	n := len(r.data) - r.bytePos
	if n < 0 {
		return 0
	}

	return n
}

// AtEOF reports whether the reader has consumed the entire buffer.
func (r *Reader) AtEOF() bool {
	return r.bytePos >= len(r.data) && r.bitPos == 0
}

// ReadFile reads path, optionally decompressing it with codec, and
// returns a Reader over the result. Passing a nil codec skips
// decompression.
func ReadFile(path string, codec compress.Codec) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewIOError("read", err)
	}

	if codec != nil {
		decompressed, err := codec.Decompress(data)
		if err != nil {
			return nil, errs.NewCodecError("decompress", err)
		}
		data = decompressed
	}

	return NewReader(data), nil
}
