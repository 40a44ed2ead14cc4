package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoSHA256 HashAlgo = "sha256"
	HashAlgoBLAKE3 HashAlgo = "blake3"
)

// HashBytes returns the hash of bytes as a hex string using the specified
// algorithm. Node content hashes use blake3; sha256 is kept for callers
// that need a FIPS-friendly digest.
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoSHA256:
		hash := sha256.Sum256(data)
		return hex.EncodeToString(hash[:]), nil
	case HashAlgoBLAKE3:
		hash := blake3.Sum256(data)
		return hex.EncodeToString(hash[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// ContentHash is the digest recorded on crawled nodes.
func ContentHash(body []byte) string {
	hash := blake3.Sum256(body)
	return hex.EncodeToString(hash[:])
}
