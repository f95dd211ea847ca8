// Package format defines the small fixed-width enums that appear in the
// compressed file header, so their numeric values stay stable across
// releases regardless of which algorithms a given build links in.
package format

type (
	DistanceType    uint8
	CompressionType uint8
)

const (
	DistanceCosine  DistanceType = 0x1 // DistanceCosine selects the q-gram cosine distance.
	DistanceMinHash DistanceType = 0x2 // DistanceMinHash selects the MinHash Jaccard estimate.
	DistanceQGram   DistanceType = 0x3 // DistanceQGram selects the q-gram edit distance.

	CompressionNone  CompressionType = 0x1 // CompressionNone represents no outer compression.
	CompressionLZMA  CompressionType = 0x2 // CompressionLZMA represents LZMA compression.
	CompressionGzip  CompressionType = 0x3 // CompressionGzip represents DEFLATE/gzip compression.
	CompressionZstd  CompressionType = 0x4 // CompressionZstd represents Zstandard compression.
	CompressionLZ4   CompressionType = 0x5 // CompressionLZ4 represents LZ4 block compression.
	CompressionBZIP2 CompressionType = 0x6 // CompressionBZIP2 represents bzip2 compression.
)

func (d DistanceType) String() string {
	switch d {
	case DistanceCosine:
		return "Cosine"
	case DistanceMinHash:
		return "MinHash"
	case DistanceQGram:
		return "QGram"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZMA:
		return "LZMA"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	case CompressionBZIP2:
		return "BZIP2"
	default:
		return "Unknown"
	}
}

// Header is the fixed-size file header written once before the first block.
//
// Bit layout of Params:
//
//	bits [3:0] = compressor id
//	bits [6:4] = distance-function id
//	bit  7     = use_approx flag
type Header struct {
	WindowSize uint16
	Params     uint8
}

// EncodeParams packs a compressor id, distance id and use_approx flag into
// a single header byte.
func EncodeParams(compressor CompressionType, distance DistanceType, useApprox bool) uint8 {
	b := uint8(compressor) & 0x0F
	b |= (uint8(distance) & 0x07) << 4
	if useApprox {
		b |= 0x80
	}

	return b
}

// DecodeParams unpacks a header params byte into its three fields.
func DecodeParams(params uint8) (compressor CompressionType, distance DistanceType, useApprox bool) {
	compressor = CompressionType(params & 0x0F)
	distance = DistanceType((params >> 4) & 0x07)
	useApprox = params&0x80 != 0

	return compressor, distance, useApprox
}
