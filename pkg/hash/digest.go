// Package hash provides the SHA-512 digest primitive shared by the
// hashing, proof-of-work, and proof subsystems.
package hash

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
)

// DigestSize is the length of a digest in bytes.
const DigestSize = 64

// Digest errors.
var (
	ErrInvalidLength = errors.New("hash: digest must be 64 bytes")
	ErrInvalidFormat = errors.New("hash: invalid hex string")
)

// Digest is a 512-bit hash value, totally ordered by the big-endian
// numeric interpretation of its bytes.
type Digest [DigestSize]byte

// Sum computes the SHA-512 digest of data.
func Sum(data []byte) Digest {
	return sha512.Sum512(data)
}

// FromBytes converts a 64-byte slice to a Digest.
func FromBytes(b []byte) (Digest, error) {
	if len(b) != DigestSize {
		return Digest{}, ErrInvalidLength
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// FromHex decodes a lowercase hex string into a Digest.
func FromHex(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, ErrInvalidFormat
	}
	return FromBytes(b)
}

// Bytes returns a copy of the digest as a byte slice.
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestSize)
	copy(b, d[:])
	return b
}

// IsZero returns true if the digest is all zeros.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Cmp compares two digests numerically, returning -1, 0 or +1.
func (d Digest) Cmp(other Digest) int {
	return bytes.Compare(d[:], other[:])
}

// Less reports whether d is numerically below other.
func (d Digest) Less(other Digest) bool {
	return d.Cmp(other) < 0
}

// String returns the hex-encoded digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalJSON encodes the digest as a hex string.
func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a hex string into a digest.
func (d *Digest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Digest{}
		return nil
	}
	decoded, err := FromHex(s)
	if err != nil {
		return err
	}
	*d = decoded
	return nil
}
