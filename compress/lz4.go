package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse. lz4.Compressor
// keeps an internal match-finder hash table that is wasteful to reallocate
// per block.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec wraps pierrec/lz4's block format. It favors speed over ratio,
// making it a reasonable default for blocks dominated by literal op-lists
// where a heavier compressor's ratio gain would not offset its cost.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec returns an LZ4Codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// lz4Stored/lz4Compressed tag the leading byte of the codec's output.
// CompressBlock reports "no compression achieved" by returning n == 0
// rather than an error, which the raw block format has no way to encode
// on its own; small or high-entropy input hits this constantly, so the
// tag lets Decompress tell a stored block from a compressed one instead
// of silently losing the data.
const (
	lz4Stored     byte = 0
	lz4Compressed byte = 1
)

// Compress compresses data using the LZ4 block format via a pooled
// lz4.Compressor. If the block format achieves no reduction, data is
// stored as-is behind the lz4Stored tag.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, 1+dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		out := make([]byte, 1+len(data))
		out[0] = lz4Stored
		copy(out[1:], data)

		return out, nil
	}

	dst[0] = lz4Compressed

	return dst[:1+n], nil
}

// Decompress decompresses an LZ4 block, or returns a stored block as-is.
//
// The decompressed size is not stored in the LZ4 block format, so this
// grows a scratch buffer geometrically starting at 4x the compressed
// size and retries on ErrInvalidSourceShortBuffer, up to a 128MB cap to
// bound memory use against corrupt input.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	tag, data := data[0], data[1:]
	if tag == lz4Stored {
		out := make([]byte, len(data))
		copy(out, data)

		return out, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
