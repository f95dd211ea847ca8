package record_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basilisk-io/logref/align"
	"github.com/basilisk-io/logref/record"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	records := []record.Record{
		{Matched: false, Literal: []byte("first line, never seen before")},
		{
			Matched: true,
			Ref:     0,
			Ops: []align.Operation{
				{Position: 4, DelLen: 3, InsLen: 3, Substr: "404"},
			},
		},
		{Matched: false, Literal: []byte("another completely new line")},
		{
			Matched: true,
			Ref:     1,
			Ops: []align.Operation{
				{Position: 0, DelLen: 0, InsLen: 5, Substr: "hello"},
				{Position: 10, DelLen: 2, InsLen: 0, Substr: ""},
			},
		},
	}

	encoded, err := record.Encode(records)
	require.NoError(t, err)

	decoded, err := record.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, records, decoded)
}

func TestEncodeDecodeAllLiteral(t *testing.T) {
	records := []record.Record{
		{Matched: false, Literal: []byte("alpha")},
		{Matched: false, Literal: []byte("beta")},
		{Matched: false, Literal: []byte("gamma")},
	}

	encoded, err := record.Encode(records)
	require.NoError(t, err)

	decoded, err := record.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, records, decoded)
}

func TestEncodeDecodeAllMatched(t *testing.T) {
	records := []record.Record{
		{Matched: true, Ref: 0, Ops: []align.Operation{{Position: 1, DelLen: 1, InsLen: 1, Substr: "x"}}},
		{Matched: true, Ref: 1, Ops: nil},
	}

	encoded, err := record.Encode(records)
	require.NoError(t, err)

	decoded, err := record.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, records, decoded)
}

func TestEncodeDecodeEmptyBlock(t *testing.T) {
	encoded, err := record.Encode(nil)
	require.NoError(t, err)

	decoded, err := record.Decode(encoded)
	require.NoError(t, err)
	require.Empty(t, decoded)
}
