// Package pow implements proof-of-work mining and verification on top
// of Balloon hashing.
package pow

import (
	"encoding/binary"
	"errors"
	"math"
	"math/bits"

	"github.com/yobicash/yobicrypto/pkg/hash"
)

// PoW errors.
var (
	ErrOutOfBound    = errors.New("pow: difficulty out of bound")
	ErrNotFound      = errors.New("pow: proof not mined")
	ErrInvalidDigest = errors.New("pow: digest does not prove the work")
)

// Difficulty bounds, in leading zero bits of an accepted digest.
const (
	MinDifficulty     = 3
	MaxDifficulty     = 63
	DefaultDifficulty = 3
)

// Target encodes a difficulty as the maximum digest value that counts
// as found. The first 8 bytes carry MaxUint64 >> bits big-endian; the
// remaining 56 bytes are all 0xFF.
type Target struct {
	digest hash.Digest
}

// NewTarget builds the threshold for the given number of leading zero
// bits. Fails for bits above 63.
func NewTarget(bitCount uint32) (Target, error) {
	if bitCount > MaxDifficulty {
		return Target{}, ErrOutOfBound
	}
	var d hash.Digest
	binary.BigEndian.PutUint64(d[:8], math.MaxUint64>>bitCount)
	for i := 8; i < hash.DigestSize; i++ {
		d[i] = 0xFF
	}
	return Target{digest: d}, nil
}

// DefaultTarget returns the target for the default difficulty.
func DefaultTarget() Target {
	t, _ := NewTarget(DefaultDifficulty)
	return t
}

// TargetFromBytes deserializes a target from its 64-byte threshold.
func TargetFromBytes(b []byte) (Target, error) {
	d, err := hash.FromBytes(b)
	if err != nil {
		return Target{}, err
	}
	return Target{digest: d}, nil
}

// TargetFromHex deserializes a target from the hex form of its threshold.
func TargetFromHex(s string) (Target, error) {
	d, err := hash.FromHex(s)
	if err != nil {
		return Target{}, err
	}
	return Target{digest: d}, nil
}

// Bits returns the difficulty encoded by the target: the leading zero
// bits of its first 8 bytes.
func (t Target) Bits() uint32 {
	return uint32(bits.LeadingZeros64(binary.BigEndian.Uint64(t.digest[:8])))
}

// Digest returns the threshold digest.
func (t Target) Digest() hash.Digest {
	return t.digest
}

// Validate fails when the encoded difficulty is out of bound.
func (t Target) Validate() error {
	if t.Bits() > MaxDifficulty {
		return ErrOutOfBound
	}
	return nil
}

// Bytes serializes the target's threshold digest.
func (t Target) Bytes() []byte {
	return t.digest.Bytes()
}

// String returns the lowercase hex encoding of the threshold.
func (t Target) String() string {
	return t.digest.String()
}
