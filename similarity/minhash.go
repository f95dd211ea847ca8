package similarity

import (
	"math/rand"

	"github.com/basilisk-io/logref/internal/hash"
)

// minHashPrime is the 64-bit FNV prime, used as the modulus for every
// hash function in the MinHash family.
const minHashPrime = 1099511628211

// MinHash estimates Jaccard similarity between the q-gram sets of two
// lines using H independent hash functions of the form
// h_k(x) = (a_k*base(x) + b_k) mod P, taking the per-hash minimum over
// all q-grams of a line as that line's signature component.
//
// A MinHash value is not safe for concurrent use; the pipeline owns one
// per compress invocation and calls Reset at block boundaries to drop the signature
// cache, since signatures are only valid within the window that produced
// them.
type MinHash struct {
	q        int
	numHash  int
	a, b     []uint64
	sigCache map[uint64][]uint64
}

// NewMinHash returns a MinHash comparing q-grams of length q using
// numHash independent hash functions, with coefficients drawn
// deterministically from a fixed seed so that repeated runs over the
// same input always produce the same signatures.
func NewMinHash(q, numHash int) *MinHash {
	src := rand.NewSource(12345)
	gen := rand.New(src)

	a := make([]uint64, numHash)
	b := make([]uint64, numHash)
	for i := 0; i < numHash; i++ {
		a[i] = gen.Uint64()
		b[i] = gen.Uint64()
	}

	return &MinHash{
		q:        q,
		numHash:  numHash,
		a:        a,
		b:        b,
		sigCache: make(map[uint64][]uint64),
	}
}

// Reset clears the signature cache. Call it at block boundaries.
func (m *MinHash) Reset() {
	m.sigCache = make(map[uint64][]uint64)
}

func djb2(data []byte) uint64 {
	hash := uint64(5381)
	for _, c := range data {
		hash = ((hash << 5) + hash) + uint64(c)
	}

	return hash
}

// signature returns s's MinHash signature, computing and caching it on
// first use. A string shorter than q produces a signature of all
// math.MaxUint64, matching every other too-short string and no other.
func (m *MinHash) signature(s []byte) []uint64 {
	key := hash.BytesID(s)
	if cached, ok := m.sigCache[key]; ok {
		return cached
	}

	sig := make([]uint64, m.numHash)
	for i := range sig {
		sig[i] = ^uint64(0)
	}

	if len(s) >= m.q {
		for i := 0; i+m.q <= len(s); i++ {
			base := djb2(s[i : i+m.q])
			for h := 0; h < m.numHash; h++ {
				v := (m.a[h]*base + m.b[h]) % minHashPrime
				if v < sig[h] {
					sig[h] = v
				}
			}
		}
	}

	m.sigCache[key] = sig

	return sig
}

// Distance returns the MinHash-estimated distance between a and b:
// 1 minus the fraction of signature components that agree. Identical
// inputs return 0.0 without hashing; empty or too-short inputs return
// the maximum distance of 1.0.
func (m *MinHash) Distance(a, b []byte) float64 {
	if string(a) == string(b) {
		return 0.0
	}
	if len(a) < m.q || len(b) < m.q {
		return 1.0
	}

	sigA := m.signature(a)
	sigB := m.signature(b)

	matches := 0
	for i := range sigA {
		if sigA[i] == sigB[i] {
			matches++
		}
	}

	return 1.0 - float64(matches)/float64(m.numHash)
}
