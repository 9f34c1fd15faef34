package crypto

import (
	"github.com/minio/sha256-simd"
)

// Sha256 returns the SHA-256 digest of bz.
func Sha256(bz []byte) []byte {
	hasher := sha256.New()
	hasher.Write(bz)
	return hasher.Sum(nil)
}

// Sha256Many hashes the concatenation of the given byteslices as if they
// were one joined slice.
func Sha256Many(data []byte, rest ...[]byte) []byte {
	hasher := sha256.New()
	hasher.Write(data)
	for _, b := range rest {
		hasher.Write(b)
	}
	return hasher.Sum(nil)
}
