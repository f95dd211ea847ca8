// Package window implements the sliding window used by the pipeline: a bounded
// FIFO of the last W emitted lines that both the encoder and decoder keep
// in lockstep, since reference offsets are positions into it rather than
// absolute line numbers.
package window

// Window is a bounded FIFO of recently emitted lines. References into it
// are positional: offset 0 is the oldest line currently held, matching
// the convention that a line's reference set is "the W lines preceding
// it" in input order.
//
// A Window is not safe for concurrent use; the pipeline owns one per
// compress or decompress invocation.
type Window struct {
	size  int
	lines [][]byte
}

// New returns an empty Window holding at most size lines. size must be at
// least 1.
func New(size int) *Window {
	return &Window{
		size:  size,
		lines: make([][]byte, 0, size),
	}
}

// Len returns the number of lines currently held.
func (w *Window) Len() int {
	return len(w.lines)
}

// At returns the line at the given offset, where 0 is the oldest line
// held. ok is false if offset is out of range.
func (w *Window) At(offset int) (line []byte, ok bool) {
	if offset < 0 || offset >= len(w.lines) {
		return nil, false
	}

	return w.lines[offset], true
}

// Lines returns the lines currently held, oldest first. The returned
// slice is owned by the Window and must not be modified.
func (w *Window) Lines() [][]byte {
	return w.lines
}

// Push appends line, evicting the oldest line first if the window is
// already at capacity.
func (w *Window) Push(line []byte) {
	if len(w.lines) >= w.size {
		w.lines = append(w.lines[:0], w.lines[1:]...)
	}
	w.lines = append(w.lines, line)
}
