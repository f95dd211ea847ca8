package rle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basilisk-io/logref/rle"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := map[string][]int{
		"alternating":    {0, 1, 0, 1, 0, 1, 0, 1},
		"long runs":      {0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		"single values":  {0, 1, 0, 1, 0},
		"mixed":          {0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 1, 1, 0},
		"all zero":       {0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		"all one":        {1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		"single element": {1},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			encoded, count, err := rle.Encode(input)
			require.NoError(t, err)

			decoded, err := rle.Decode(encoded, count)
			require.NoError(t, err)
			require.Equal(t, input, decoded)
		})
	}
}

func TestLargeAlternatingPattern(t *testing.T) {
	input := make([]int, 50000)
	for i := range input {
		input[i] = i % 2
	}

	encoded, count, err := rle.Encode(input)
	require.NoError(t, err)

	decoded, err := rle.Decode(encoded, count)
	require.NoError(t, err)
	require.Equal(t, input, decoded)
}

func TestEmptyInput(t *testing.T) {
	encoded, count, err := rle.Encode(nil)
	require.NoError(t, err)
	require.Empty(t, encoded)
	require.Zero(t, count)

	decoded, err := rle.Decode(encoded, count)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestDecodeUnderflow(t *testing.T) {
	_, err := rle.Decode(nil, 3)
	require.Error(t, err)
}
