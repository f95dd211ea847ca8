package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// LZMACodec wraps ulikunitz/xz/lzma. It is the slowest and highest-ratio
// option in the set, intended for cold blocks written once and read
// rarely, where compression time is not on the critical path.
type LZMACodec struct{}

var _ Codec = (*LZMACodec)(nil)

// NewLZMACodec returns an LZMACodec.
func NewLZMACodec() LZMACodec {
	return LZMACodec{}
}

// Compress compresses data using LZMA with the library's default
// parameters.
func (c LZMACodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("lzma compress: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lzma compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lzma compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses LZMA-compressed data.
func (c LZMACodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("lzma decompress: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lzma decompress: %w", err)
	}

	return out, nil
}
