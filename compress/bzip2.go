package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Bzip2Codec wraps dsnet/compress/bzip2. BWT-based compression is slower
// than zstd or gzip but tends to win on highly repetitive literal
// op-lists, where the block-sort step groups matching substitution
// payloads together before entropy coding.
type Bzip2Codec struct{}

var _ Codec = (*Bzip2Codec)(nil)

// NewBzip2Codec returns a Bzip2Codec.
func NewBzip2Codec() Bzip2Codec {
	return Bzip2Codec{}
}

// Compress compresses data using bzip2.
func (c Bzip2Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := bzip2.NewWriter(&buf, nil)
	if err != nil {
		return nil, fmt.Errorf("bzip2 compress: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("bzip2 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("bzip2 compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses bzip2-compressed data.
func (c Bzip2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := bzip2.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("bzip2 decompress: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bzip2 decompress: %w", err)
	}

	return out, nil
}
