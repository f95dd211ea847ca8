// Package logref provides a reference-based log compression codec: each
// line is stored either as a reference to a recent line plus a list of
// edit operations, or literally when no recent line is similar enough.
//
// # Core features
//
//   - Sliding-window reference matching with three selectable similarity
//     measures (cosine, MinHash, q-gram edit distance)
//   - Two edit-operation aligners: an exact dynamic-programming
//     substitution aligner and a fast approximate q-gram aligner
//   - Column-oriented block encoding built on bit-packing, run-length,
//     and delta-of-delta numeric codecs
//   - Optional final-pass byte compression (LZMA, gzip, Zstandard, LZ4,
//     bzip2)
//
// # Basic usage
//
//	cfg, _ := pipeline.NewConfig(
//	    pipeline.WithWindowSize(8),
//	    pipeline.WithThreshold(0.06),
//	)
//	stats, err := logref.Compress(r, w, cfg)
//	err = logref.Decompress(compressed, decompressed)
//
// # Package structure
//
// This package re-exports the pipeline package's Compress/Decompress as
// convenient top-level entry points. For fine-grained control over a
// single component — the bit stream, a specific aligner, the record
// encoder — use that package directly.
package logref

import (
	"io"

	"github.com/basilisk-io/logref/pipeline"
)

// Config configures a Compress invocation. See pipeline.Config for the
// full set of options.
type Config = pipeline.Config

// Option configures a Config built by NewConfig.
type Option = pipeline.Option

// Stats describes the result of a Compress invocation.
type Stats = pipeline.Stats

// NewConfig returns a Config with the CLI-surface default values,
// overridden by opts in order.
func NewConfig(opts ...Option) (*Config, error) {
	return pipeline.NewConfig(opts...)
}

// Compress reads newline-delimited lines from r and writes the
// compressed file to w.
func Compress(r io.Reader, w io.Writer, cfg *Config) (Stats, error) {
	return pipeline.Compress(r, w, cfg)
}

// Decompress reads a file previously produced by Compress from r and
// writes the reconstructed lines to w.
func Decompress(r io.Reader, w io.Writer) error {
	return pipeline.Decompress(r, w)
}
