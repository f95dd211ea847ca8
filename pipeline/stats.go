package pipeline

// Stats describes one compress invocation: how many lines were seen, how
// many were matched against the window versus stored literally, and the
// resulting byte counts. It describes a whole file rather than a single
// block.
type Stats struct {
	Lines          int
	MatchedLines   int
	LiteralLines   int
	Blocks         int
	OriginalSize   int64
	CompressedSize int64
	ElapsedSeconds float64
}

// CompressionRatio returns CompressedSize / OriginalSize. Values below
// 1.0 indicate the output is smaller than the input.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}
