// Package bitio implements the variable-width bit stream used by the
// column codecs in logref (bitpack, rle, ts2diff) and by the pipeline's
// file header. It is the one place that knows how to pack and unpack
// individual bits into bytes; those packages build on Writer/Reader
// instead of doing their own bit arithmetic. Package record frames the
// resulting byte columns with byte-level length prefixes of its own.
package bitio

import (
	"os"

	"github.com/basilisk-io/logref/compress"
	"github.com/basilisk-io/logref/errs"
)

// Writer appends variable-width unsigned integers to a byte buffer,
// most-significant-bit first.
//
// A Writer is not safe for concurrent use. Each encoder call (bitpack,
// rle, ts2diff, the pipeline header) creates and owns its own Writer.
type Writer struct {
	buf   []byte
	cur   byte
	nbits uint // number of valid bits already shifted into cur, 0-7
}

// NewWriter returns a Writer with an empty buffer.
func NewWriter() *Writer {
	return &Writer{}
}

// Encode appends the low width bits of value, most-significant-bit first.
// width must be in [1, 32].
func (w *Writer) Encode(value uint32, width int) error {
	if width < 1 || width > 32 {
		return errs.ErrInvalidArgument
	}

	if width < 32 {
		value &= (1 << uint(width)) - 1
	}

	for i := width - 1; i >= 0; i-- {
		bit := byte((value >> uint(i)) & 1)
		w.cur = (w.cur << 1) | bit
		w.nbits++
		if w.nbits == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur = 0
			w.nbits = 0
		}
	}

	return nil
}

// Pack flushes any partial byte, padding the low bits with zeros.
// It is idempotent: calling it with no pending bits is a no-op.
func (w *Writer) Pack() {
	if w.nbits == 0 {
		return
	}

	w.cur <<= (8 - w.nbits)
	w.buf = append(w.buf, w.cur)
	w.cur = 0
	w.nbits = 0
}

// Len returns the number of fully packed bytes currently buffered.
// Pending sub-byte bits are not counted until Pack is called.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the packed byte buffer. Call Pack first to flush any
// pending partial byte. The returned slice is valid until the next call
// to Encode, Pack, Reset, or WriteFile.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reset clears the writer for reuse.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.cur = 0
	w.nbits = 0
}

// WriteFile packs any pending bits, optionally compresses the buffer with
// codec, and writes the result to path using either truncate or append
// semantics. After a successful write the writer's internal buffer is
// cleared. Passing a nil codec skips compression.
func (w *Writer) WriteFile(path string, appendMode bool, codec compress.Codec) error {
	w.Pack()

	data := w.buf
	if codec != nil {
		compressed, err := codec.Compress(data)
		if err != nil {
			return errs.NewCodecError("compress", err)
		}
		data = compressed
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendMode {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return errs.NewIOError("open", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return errs.NewIOError("write", err)
	}

	w.Reset()

	return nil
}
