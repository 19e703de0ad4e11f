package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

type Hash [HashSize]byte

// HashData hashes the input data using blake2b-256.
func HashData(data []byte) Hash {
	return blake2b.Sum256(data)
}

// HashConcat hashes the concatenation of the given byte slices without
// allocating the joined input.
func HashConcat(parts ...[]byte) Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails on invalid key sizes, never for nil keys.
		panic(err)
	}
	for _, p := range parts {
		h.Write(p)
	}
	var result Hash
	copy(result[:], h.Sum(nil))
	return result
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
