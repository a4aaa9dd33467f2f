package object

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSize is the length of a hex-encoded Hash.
const HashSize = sha256.Size * 2

// HashBytes computes the SHA-256 of data and returns it as a lowercase
// hex-encoded Hash. No header or envelope is mixed in: the identifier of an
// object is a pure function of its bytes.
func HashBytes(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// Valid reports whether h is a well-formed full-length lowercase hex hash.
func (h Hash) Valid() bool {
	return len(h) == HashSize && isLowerHex(string(h))
}

// Short returns the first 8 characters of h, or h itself if shorter.
func (h Hash) Short() string {
	if len(h) > 8 {
		return string(h[:8])
	}
	return string(h)
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
