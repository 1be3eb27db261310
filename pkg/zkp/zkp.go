// Package zkp implements non-interactive Schnorr zero-knowledge proofs
// of discrete-log knowledge over secp256k1, using the Fiat-Shamir
// transform: the prover shows it knows x with w = g^x without
// revealing x.
package zkp

import (
	"encoding/hex"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/yobicash/yobicrypto/pkg/hash"
)

// ZKP errors.
var (
	ErrInvalidScalar = errors.New("zkp: scalar is zero or out of range")
	ErrInvalidPoint  = errors.New("zkp: not a valid curve point")
	ErrInvalidLength = errors.New("zkp: malformed serialized length")
	ErrInvalidFormat = errors.New("zkp: invalid hex string")
)

// Serialized sizes in bytes.
const (
	ScalarSize  = 32
	WitnessSize = 33
	ProofSize   = WitnessSize + 2*ScalarSize
)

// RandomScalar returns a uniformly random nonzero group scalar, usable
// as a secret instance.
func RandomScalar() (*secp256k1.ModNScalar, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &priv.Key, nil
}

// ScalarFromBytes parses a 32-byte big-endian scalar. Values at or
// above the group order are rejected rather than reduced.
func ScalarFromBytes(b []byte) (*secp256k1.ModNScalar, error) {
	if len(b) != ScalarSize {
		return nil, ErrInvalidLength
	}
	var buf [ScalarSize]byte
	copy(buf[:], b)
	var s secp256k1.ModNScalar
	if overflow := s.SetBytes(&buf); overflow != 0 {
		return nil, ErrInvalidScalar
	}
	return &s, nil
}

// hashToScalar maps arbitrary bytes onto the scalar field through the
// toolkit's digest primitive.
func hashToScalar(b []byte) *secp256k1.ModNScalar {
	d := hash.Sum(b)
	var s secp256k1.ModNScalar
	s.SetByteSlice(d[:ScalarSize])
	return &s
}

// basePoint returns the curve generator in affine coordinates.
func basePoint() secp256k1.JacobianPoint {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	var g secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &g)
	g.ToAffine()
	return g
}

// pointBytes serializes an affine point in 33-byte compressed form.
func pointBytes(p *secp256k1.JacobianPoint) []byte {
	return secp256k1.NewPublicKey(&p.X, &p.Y).SerializeCompressed()
}

// pointFromBytes parses a 33-byte compressed point.
func pointFromBytes(b []byte) (secp256k1.JacobianPoint, error) {
	if len(b) != WitnessSize {
		return secp256k1.JacobianPoint{}, ErrInvalidLength
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return secp256k1.JacobianPoint{}, ErrInvalidPoint
	}
	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	return p, nil
}

// Witness is the public side of the relation w = g^x.
type Witness struct {
	point secp256k1.JacobianPoint
}

// NewWitness derives the witness for a secret instance.
func NewWitness(instance *secp256k1.ModNScalar) (*Witness, error) {
	if instance.IsZero() {
		return nil, ErrInvalidScalar
	}
	var p secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(instance, &p)
	p.ToAffine()
	return &Witness{point: p}, nil
}

// WitnessFromBytes parses a witness from compressed-point form.
func WitnessFromBytes(b []byte) (*Witness, error) {
	p, err := pointFromBytes(b)
	if err != nil {
		return nil, err
	}
	return &Witness{point: p}, nil
}

// WitnessFromHex parses a witness from the hex form of its point.
func WitnessFromHex(s string) (*Witness, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return WitnessFromBytes(b)
}

// Bytes serializes the witness point in compressed form.
func (w *Witness) Bytes() []byte {
	return pointBytes(&w.point)
}

// String returns the hex encoding of the compressed point.
func (w *Witness) String() string {
	return hex.EncodeToString(w.Bytes())
}

// Equal reports whether two witnesses wrap the same point.
func (w *Witness) Equal(other *Witness) bool {
	return w.point.X.Equals(&other.point.X) &&
		w.point.Y.Equals(&other.point.Y) &&
		w.point.Z.Equals(&other.point.Z)
}

// Proof is a non-interactive proof of knowledge of the instance behind
// a witness.
type Proof struct {
	// publicCoin is t = g^v for the message-derived scalar v.
	publicCoin secp256k1.JacobianPoint
	// challenge is c = H(g || w || t) mapped to a scalar.
	challenge secp256k1.ModNScalar
	// response is r = v - c*x.
	response secp256k1.ModNScalar
}

// NewProof proves knowledge of instance for the given message. The
// commitment scalar is derived from the message, making the proof
// deterministic for a (instance, message) pair.
func NewProof(instance *secp256k1.ModNScalar, message []byte) (*Proof, error) {
	if instance.IsZero() {
		return nil, ErrInvalidScalar
	}

	g := basePoint()

	var witness secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(instance, &witness)
	witness.ToAffine()

	v := hashToScalar(message)
	var publicCoin secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(v, &publicCoin)
	publicCoin.ToAffine()

	pre := make([]byte, 0, 3*WitnessSize)
	pre = append(pre, pointBytes(&g)...)
	pre = append(pre, pointBytes(&witness)...)
	pre = append(pre, pointBytes(&publicCoin)...)
	challenge := hashToScalar(pre)

	var cx secp256k1.ModNScalar
	cx.Mul2(challenge, instance)
	var response secp256k1.ModNScalar
	response.NegateVal(&cx).Add(v)

	return &Proof{
		publicCoin: publicCoin,
		challenge:  *challenge,
		response:   response,
	}, nil
}

// Verify accepts iff t == g^r + w^c, i.e. the response was built from
// the instance behind the witness.
func (p *Proof) Verify(witness *Witness) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}

	var gr, wc, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&p.response, &gr)
	secp256k1.ScalarMultNonConst(&p.challenge, &witness.point, &wc)
	secp256k1.AddNonConst(&gr, &wc, &sum)
	sum.ToAffine()

	ok := p.publicCoin.X.Equals(&sum.X) && p.publicCoin.Y.Equals(&sum.Y)
	return ok, nil
}

// Validate rejects degenerate proof components.
func (p *Proof) Validate() error {
	if (p.publicCoin.X.IsZero() && p.publicCoin.Y.IsZero()) || p.publicCoin.Z.IsZero() {
		return ErrInvalidPoint
	}
	return nil
}

// Bytes serializes the proof as public coin || challenge || response
// (33 + 32 + 32 bytes).
func (p *Proof) Bytes() []byte {
	b := make([]byte, 0, ProofSize)
	b = append(b, pointBytes(&p.publicCoin)...)
	c := p.challenge.Bytes()
	b = append(b, c[:]...)
	r := p.response.Bytes()
	b = append(b, r[:]...)
	return b
}

// ProofFromBytes deserializes the fixed 97-byte layout.
func ProofFromBytes(b []byte) (*Proof, error) {
	if len(b) != ProofSize {
		return nil, ErrInvalidLength
	}
	coin, err := pointFromBytes(b[:WitnessSize])
	if err != nil {
		return nil, err
	}
	challenge, err := ScalarFromBytes(b[WitnessSize : WitnessSize+ScalarSize])
	if err != nil {
		return nil, err
	}
	response, err := ScalarFromBytes(b[WitnessSize+ScalarSize:])
	if err != nil {
		return nil, err
	}
	return &Proof{publicCoin: coin, challenge: *challenge, response: *response}, nil
}

// String returns the hex encoding of the binary form.
func (p *Proof) String() string {
	return hex.EncodeToString(p.Bytes())
}

// ProofFromHex deserializes a proof from its hex form.
func ProofFromHex(s string) (*Proof, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return ProofFromBytes(b)
}
