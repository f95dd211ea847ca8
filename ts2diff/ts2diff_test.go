package ts2diff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basilisk-io/logref/ts2diff"
)

func alternatingSigns(n int) []int64 {
	v := make([]int64, n)
	for i := range v {
		if i%2 == 0 {
			v[i] = 100
		} else {
			v[i] = -100
		}
	}

	return v
}

func repeatedCycle(n, mod int) []int64 {
	v := make([]int64, n)
	for i := range v {
		v[i] = int64(i % mod)
	}

	return v
}

func ascendingBy(n int, step int64) []int64 {
	v := make([]int64, n)
	for i := range v {
		v[i] = int64(i) * step
	}

	return v
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := map[string][]int64{
		"ascending":          {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"mixed signs":        {-100, -50, 0, 50, 100, -200, 200, -300, 300},
		"single value":       {42},
		"alternating":        alternatingSigns(100),
		"repeated cycle":     repeatedCycle(1000, 100),
		"spans three blocks": ascendingBy(130, 2),
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			encoded, err := ts2diff.Encode(input)
			require.NoError(t, err)

			decoded, err := ts2diff.Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, input, decoded)
		})
	}
}

func TestEmptyInput(t *testing.T) {
	encoded, err := ts2diff.Encode(nil)
	require.NoError(t, err)

	decoded, err := ts2diff.Decode(encoded)
	require.NoError(t, err)
	require.Empty(t, decoded)
}
