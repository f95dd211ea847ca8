// Package similarity implements the three selectable distance measures
// the pipeline uses to pick a reference line from the sliding window:
// q-gram cosine, MinHash Jaccard, and q-gram edit distance (via
// the approximate aligner in package align). All three return a value in
// [0, 1], where 0 means identical.
package similarity

import (
	"math"

	"github.com/basilisk-io/logref/align"
	"github.com/basilisk-io/logref/internal/hash"
)

// qgramCounts returns the multiset of overlapping q-grams of s as counts
// keyed by a 64-bit xxhash fingerprint of the q-gram rather than the raw
// bytes, avoiding a string allocation per q-gram and giving a stable, fast
// key for the short-lived per-comparison map. Strings shorter than q
// produce an empty multiset.
func qgramCounts(s []byte, q int) map[uint64]int {
	if len(s) < q {
		return nil
	}

	counts := make(map[uint64]int, len(s)-q+1)
	for i := 0; i+q <= len(s); i++ {
		counts[hash.BytesID(s[i:i+q])]++
	}

	return counts
}

// Cosine returns 1 minus the cosine similarity of a and b's q-gram count
// vectors. Strings shorter than q, or with no shared q-grams, return the
// maximum distance of 1.0.
func Cosine(a, b []byte, q int) float64 {
	countsA := qgramCounts(a, q)
	countsB := qgramCounts(b, q)

	var dot, normA, normB float64
	for gram, ca := range countsA {
		normA += float64(ca) * float64(ca)
		if cb, ok := countsB[gram]; ok {
			dot += float64(ca) * float64(cb)
		}
	}
	for _, cb := range countsB {
		normB += float64(cb) * float64(cb)
	}

	if normA == 0 || normB == 0 {
		return 1.0
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	return 1.0 - similarity
}

// QGram returns the q-gram edit distance of a against b, normalized to
// [0, 1] by the length of the longer string. Identical non-empty inputs
// return 0.0. It runs the approximate
// aligner (package align) purely to score the match; the resulting
// op-list is discarded here and recomputed by the pipeline only if the
// match is actually kept.
func QGram(a, b []byte, q int) float64 {
	_, cost := align.QGram(a, b, q)

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	if string(a) == string(b) {
		return 0.0
	}

	d := cost / float64(maxLen)
	if d > 1.0 {
		return 1.0
	}

	return d
}
