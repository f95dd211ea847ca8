// Package pipeline implements the driver tying every other package
// into a single compress/decompress invocation: it owns the sliding
// window, runs the similarity search and chosen aligner per input line,
// accumulates records into blocks, and frames the compressed file with
// its header and optional whole-file compression pass.
package pipeline
