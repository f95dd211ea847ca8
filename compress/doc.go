// Package compress provides the final general-purpose compression stage
// applied over the encoded file payload.
//
// # Overview
//
// logref applies a two-stage strategy:
//
//  1. Encoding: bit packing, run-length, delta-of-delta, and the
//     similarity-matched op-lists exploit the structure in a window of
//     log lines.
//  2. Compression: a general-purpose byte compressor squeezes whatever
//     redundancy the encoders left behind, in one pass over the header
//     and all encoded blocks together.
//
// This package implements the second stage. It defines three interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// and a factory, CreateCodec, that maps a format.CompressionType to a
// concrete Codec.
//
// # Supported algorithms
//
//	None   format.CompressionNone   no-op, for already-incompressible blocks
//	LZMA   format.CompressionLZMA   slowest, best ratio; cold/archival blocks
//	Gzip   format.CompressionGzip   portable, moderate ratio and speed
//	Zstd   format.CompressionZstd   strong ratio at moderate cost
//	LZ4    format.CompressionLZ4    fastest decompression, weakest ratio
//	BZIP2  format.CompressionBZIP2 block-sort; wins on repetitive literals
//
// The compressed file's leading byte, written uncompressed by
// pipeline.Compress, stores which of the six was used, so decoding never
// needs to guess the compressor.
//
// # Pooling
//
// Zstd, gzip, and LZ4 codecs reuse encoders/decoders via sync.Pool: these
// libraries allocate scratch tables on construction and are explicitly
// documented as safe, and cheaper, to reuse across calls. LZMA and BZIP2
// construct fresh streams per call since their libraries do not expose a
// reusable encoder/decoder type.
package compress
