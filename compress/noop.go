package compress

// NoOpCodec bypasses compression entirely. It is useful for benchmarking
// the codec pipeline's overhead in isolation, and for blocks whose
// columns are already near-incompressible (e.g. a block made entirely of
// literal op-lists against a cold window).
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec returns a Codec that copies data through unchanged in
// both directions.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data unchanged.
//
// The returned slice shares the input's backing array; callers must not
// mutate data after calling Compress if they still need the result.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
