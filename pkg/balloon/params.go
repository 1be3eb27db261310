// Package balloon implements Balloon memory-hard hashing: a tunable
// hash function that forces a minimum working set to compute, raising
// the cost of parallel or ASIC-based search.
package balloon

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"

	"github.com/yobicash/yobicrypto/pkg/hash"
	"github.com/yobicash/yobicrypto/pkg/memory"
)

// Balloon errors.
var (
	ErrInvalidArgument = errors.New("balloon: params out of bounds")
	ErrNotFound        = errors.New("balloon: no params reach the target memory")
	ErrInvalidLength   = errors.New("balloon: params must be 12 bytes")
	ErrInvalidFormat   = errors.New("balloon: invalid hex string")
)

// MinDelta is the smallest accepted delta coefficient.
const MinDelta = 3

// ParamsSize is the fixed wire size of Params: three big-endian uint32.
const ParamsSize = 12

// Params holds the three cost coefficients of a Balloon hashing run.
type Params struct {
	// SCost is the number of buffer slots (memory cost).
	SCost uint32
	// TCost is the number of mixing rounds (time cost).
	TCost uint32
	// Delta is the number of pseudo-random dependencies per slot per round.
	Delta uint32
}

// DefaultParams returns the minimum accepted parameters {1, 1, 3}.
func DefaultParams() Params {
	return Params{SCost: 1, TCost: 1, Delta: MinDelta}
}

// NewParams creates validated Params.
func NewParams(sCost, tCost, delta uint32) (Params, error) {
	p := Params{SCost: sCost, TCost: tCost, Delta: delta}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the coefficient lower bounds.
func (p Params) Validate() error {
	if p.SCost == 0 || p.TCost == 0 || p.Delta < MinDelta {
		return ErrInvalidArgument
	}
	return nil
}

// Memory returns the theoretical memory footprint of a hashing run:
// 64 * (s_cost + (t_cost-1) * (1 + 2*(delta-1))) bytes. This is a cost
// estimate, not a peak-RSS guarantee.
func (p Params) Memory() (*memory.Memory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := memory.FromUint32(p.SCost)
	t := memory.FromUint32(p.TCost)
	d := memory.FromUint32(p.Delta)

	one := memory.One()
	two := memory.FromUint32(2)
	digestSize := memory.FromUint32(hash.DigestSize)

	inner := one.Add(two.Mul(d.Sub(one)))
	return digestSize.Mul(s.Add(t.Sub(one).Mul(inner))), nil
}

// ParamsFromMemory derives Params whose Memory reaches target by greedy
// +1 increments in the fixed order s_cost, t_cost, delta, re-checking
// after every single step. The order and step size are part of the wire
// contract; the result is not the minimal satisfying triple. A target
// at or below the default params' footprint yields the defaults.
func ParamsFromMemory(target *memory.Memory) (Params, error) {
	p := DefaultParams()
	mem, err := p.Memory()
	if err != nil {
		return Params{}, err
	}
	if mem.Cmp(target) >= 0 {
		return p, nil
	}

	for {
		p.SCost = satInc(p.SCost)
		if mem, err = p.Memory(); err != nil {
			return Params{}, err
		}
		if mem.Cmp(target) >= 0 {
			return p, nil
		}

		p.TCost = satInc(p.TCost)
		if mem, err = p.Memory(); err != nil {
			return Params{}, err
		}
		if mem.Cmp(target) >= 0 {
			return p, nil
		}

		p.Delta = satInc(p.Delta)
		if mem, err = p.Memory(); err != nil {
			return Params{}, err
		}
		if mem.Cmp(target) >= 0 {
			return p, nil
		}

		if p.SCost == math.MaxUint32 && p.TCost == math.MaxUint32 && p.Delta == math.MaxUint32 {
			return Params{}, ErrNotFound
		}
	}
}

// satInc increments v, saturating at the maximum uint32.
func satInc(v uint32) uint32 {
	if v == math.MaxUint32 {
		return v
	}
	return v + 1
}

// Bytes serializes the params as three big-endian uint32 values.
func (p Params) Bytes() []byte {
	b := make([]byte, 0, ParamsSize)
	b = binary.BigEndian.AppendUint32(b, p.SCost)
	b = binary.BigEndian.AppendUint32(b, p.TCost)
	b = binary.BigEndian.AppendUint32(b, p.Delta)
	return b
}

// ParamsFromBytes deserializes the fixed 12-byte layout.
func ParamsFromBytes(b []byte) (Params, error) {
	if len(b) != ParamsSize {
		return Params{}, ErrInvalidLength
	}
	return Params{
		SCost: binary.BigEndian.Uint32(b[0:4]),
		TCost: binary.BigEndian.Uint32(b[4:8]),
		Delta: binary.BigEndian.Uint32(b[8:12]),
	}, nil
}

// String returns the lowercase hex encoding of the binary form.
func (p Params) String() string {
	return hex.EncodeToString(p.Bytes())
}

// ParamsFromHex decodes params from the hex form produced by String.
func ParamsFromHex(s string) (Params, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Params{}, ErrInvalidFormat
	}
	return ParamsFromBytes(b)
}
