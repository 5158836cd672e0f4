// Package hash wraps xxHash64 for dictionary value bucketing and fragment checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of the given byte slice.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Checksum32 folds the xxHash64 of all parts into 32 bits.
// Parts are hashed as one contiguous stream.
func Checksum32(parts ...[]byte) uint32 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}
	sum := d.Sum64()

	return uint32(sum) ^ uint32(sum>>32) //nolint:gosec
}
