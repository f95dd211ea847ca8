package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// BytesID computes the xxHash64 of the given byte slice. Used where the
// caller already holds a []byte (a log line, a q-gram) and converting to
// a string first would just be an extra allocation.
func BytesID(data []byte) uint64 {
	return xxhash.Sum64(data)
}
