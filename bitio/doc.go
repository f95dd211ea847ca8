// See writer.go and reader.go for the Writer/Reader contract: an MSB-first
// bit accumulator generalized from a fixed 64-bit buffer to arbitrary
// 1-32 bit widths, following the same pack/align/write file contract a
// bit-buffer type needs regardless of what fixed width it started from.
package bitio
