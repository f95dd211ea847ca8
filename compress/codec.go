// Package compress wraps the general-purpose byte compressors logref can
// apply as the final layer over an encoded block stream, behind a shared
// Compressor/Decompressor/Codec interface split and a fixed six-member
// enum: {None, LZMA, GZIP, ZSTD, LZ4, BZIP2}.
package compress

import (
	"fmt"

	"github.com/basilisk-io/logref/format"
)

// Compressor compresses a byte buffer and returns the compressed result.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte buffer previously produced by the
// matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of a single compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the given
// compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionLZMA:
		return NewLZMACodec(), nil
	case format.CompressionGzip:
		return NewGzipCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	case format.CompressionBZIP2:
		return NewBzip2Codec(), nil
	default:
		return nil, fmt.Errorf("invalid compression type: %s", compressionType)
	}
}
