package compress_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basilisk-io/logref/compress"
	"github.com/basilisk-io/logref/format"
)

func sampleData() []byte {
	data := make([]byte, 0, 4096)
	for i := 0; i < 64; i++ {
		data = append(data, []byte("2026-07-31T00:00:00Z worker-7 processed request id=12345 status=200\n")...)
	}

	return data
}

func TestCreateCodecRoundTrip(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionLZMA,
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionLZ4,
		format.CompressionBZIP2,
	}

	data := sampleData()

	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := compress.CreateCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, decompressed)
		})
	}
}

func TestCreateCodecInvalidType(t *testing.T) {
	_, err := compress.CreateCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestNoOpCodecPassesDataThrough(t *testing.T) {
	codec := compress.NewNoOpCodec()
	data := []byte("no compression happens here")

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestEmptyInputRoundTrip(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionLZMA,
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionLZ4,
		format.CompressionBZIP2,
	}

	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := compress.CreateCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

// TestLZ4IncompressibleInputRoundTrip covers the case where
// lz4.CompressBlock reports "no compression achieved" (n == 0, err ==
// nil) for short or high-entropy input, which the LZ4 codec must store
// rather than discard.
func TestLZ4IncompressibleInputRoundTrip(t *testing.T) {
	codec, err := compress.CreateCodec(format.CompressionLZ4)
	require.NoError(t, err)

	for _, data := range [][]byte{
		[]byte("q7"),
		[]byte("a"),
		{0x00, 0xFF, 0x13, 0x37, 0xDE, 0xAD},
	} {
		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, data, decompressed)
	}
}
