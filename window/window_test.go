package window_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basilisk-io/logref/window"
)

func TestPushAndAt(t *testing.T) {
	w := window.New(3)
	require.Equal(t, 0, w.Len())

	w.Push([]byte("a"))
	w.Push([]byte("b"))

	line, ok := w.At(0)
	require.True(t, ok)
	require.Equal(t, []byte("a"), line)

	line, ok = w.At(1)
	require.True(t, ok)
	require.Equal(t, []byte("b"), line)

	_, ok = w.At(2)
	require.False(t, ok)
}

func TestEvictsOldestWhenFull(t *testing.T) {
	w := window.New(2)
	w.Push([]byte("a"))
	w.Push([]byte("b"))
	w.Push([]byte("c"))

	require.Equal(t, 2, w.Len())

	line, ok := w.At(0)
	require.True(t, ok)
	require.Equal(t, []byte("b"), line)

	line, ok = w.At(1)
	require.True(t, ok)
	require.Equal(t, []byte("c"), line)
}

func TestAtOutOfRange(t *testing.T) {
	w := window.New(4)
	_, ok := w.At(-1)
	require.False(t, ok)
	_, ok = w.At(0)
	require.False(t, ok)
}

func TestLinesReturnsOldestFirst(t *testing.T) {
	w := window.New(3)
	w.Push([]byte("x"))
	w.Push([]byte("y"))

	require.Equal(t, [][]byte{[]byte("x"), []byte("y")}, w.Lines())
}
