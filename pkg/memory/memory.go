// Package memory provides the arbitrary-precision byte count used for
// resource accounting across the toolkit.
package memory

import (
	"errors"
	"math"
	"math/big"
)

// Memory errors.
var (
	ErrInvalidFormat = errors.New("memory: invalid decimal string")
	ErrOutOfBound    = errors.New("memory: value not representable")
)

// Memory is an unbounded nonnegative integer counting bytes. It models
// the cost of a hashing configuration; the hashing loop itself only
// ever works with machine integers.
type Memory struct {
	i big.Int
}

// New returns the zero Memory.
func New() *Memory {
	return &Memory{}
}

// Zero returns the zero Memory.
func Zero() *Memory {
	return New()
}

// One returns the Memory holding 1.
func One() *Memory {
	return FromUint64(1)
}

// FromUint32 converts a uint32 to a Memory.
func FromUint32(n uint32) *Memory {
	return FromUint64(uint64(n))
}

// FromUint64 converts a uint64 to a Memory.
func FromUint64(n uint64) *Memory {
	m := New()
	m.i.SetUint64(n)
	return m
}

// FromFloat64 converts a float64 to a Memory, truncating any fraction.
// NaN, infinities, and negative values are not representable.
func FromFloat64(f float64) (*Memory, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil, ErrOutOfBound
	}
	m := New()
	big.NewFloat(f).Int(&m.i)
	return m, nil
}

// FromFloat32 converts a float32 to a Memory, truncating any fraction.
func FromFloat32(f float32) (*Memory, error) {
	return FromFloat64(float64(f))
}

// FromString parses a base-10 decimal string.
func FromString(s string) (*Memory, error) {
	m := New()
	if _, ok := m.i.SetString(s, 10); !ok {
		return nil, ErrInvalidFormat
	}
	return m, nil
}

// Clone returns an independent copy of m.
func (m *Memory) Clone() *Memory {
	out := New()
	out.i.Set(&m.i)
	return out
}

// Add returns m + n.
func (m *Memory) Add(n *Memory) *Memory {
	out := New()
	out.i.Add(&m.i, &n.i)
	return out
}

// Sub returns m - n.
func (m *Memory) Sub(n *Memory) *Memory {
	out := New()
	out.i.Sub(&m.i, &n.i)
	return out
}

// Mul returns m * n.
func (m *Memory) Mul(n *Memory) *Memory {
	out := New()
	out.i.Mul(&m.i, &n.i)
	return out
}

// Div returns m / n, truncated toward zero. Division by zero panics,
// as for any native integer.
func (m *Memory) Div(n *Memory) *Memory {
	out := New()
	out.i.Quo(&m.i, &n.i)
	return out
}

// Pow returns m raised to exp.
func (m *Memory) Pow(exp uint32) *Memory {
	out := New()
	out.i.Exp(&m.i, new(big.Int).SetUint64(uint64(exp)), nil)
	return out
}

// Cmp compares m and n, returning -1, 0 or +1.
func (m *Memory) Cmp(n *Memory) int {
	return m.i.Cmp(&n.i)
}

// Eq reports whether m == n.
func (m *Memory) Eq(n *Memory) bool {
	return m.Cmp(n) == 0
}

// ToUint32 converts the Memory to a uint32. The second return value is
// false when the value does not fit.
func (m *Memory) ToUint32() (uint32, bool) {
	n, ok := m.ToUint64()
	if !ok || n > math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

// ToUint64 converts the Memory to a uint64. The second return value is
// false when the value does not fit.
func (m *Memory) ToUint64() (uint64, bool) {
	if m.i.Sign() < 0 || !m.i.IsUint64() {
		return 0, false
	}
	return m.i.Uint64(), true
}

// ToFloat32 converts the Memory to a float32, possibly losing precision.
func (m *Memory) ToFloat32() float32 {
	return float32(m.ToFloat64())
}

// ToFloat64 converts the Memory to a float64, possibly losing precision.
func (m *Memory) ToFloat64() float64 {
	f, _ := new(big.Float).SetInt(&m.i).Float64()
	return f
}

// String renders the Memory in base-10. Round-trips through FromString
// for any value.
func (m *Memory) String() string {
	return m.i.Text(10)
}
