package pow

import (
	"context"
	"encoding/binary"
	"math"
	"sync"

	"github.com/yobicash/yobicrypto/pkg/balloon"
	"github.com/yobicash/yobicrypto/pkg/hash"
	"github.com/yobicash/yobicrypto/pkg/memory"
)

// PoW is a one-shot proof-of-work: created unmined, it transitions to
// mined exactly once when a nonce whose Balloon digest falls below the
// target is found. Nonce and Digest are always set together.
type PoW struct {
	// Salt is bound into every candidate digest.
	Salt hash.Digest
	// Params tune the Balloon hasher used per attempt.
	Params balloon.Params
	// Difficulty is the required count of leading zero bits, in [3, 63].
	Difficulty uint32
	// Nonce is the accepted nonce, nil while unmined.
	Nonce *uint64
	// Digest is the accepted digest, nil while unmined.
	Digest *hash.Digest

	// Threads is the number of parallel mining goroutines; 0 or 1
	// searches sequentially from nonce 0. Parallel workers scan strided
	// partitions of the nonce space and the first valid result wins, so
	// the accepted nonce need not be the lowest one.
	Threads int
}

// New creates an unmined PoW.
func New(salt hash.Digest, params balloon.Params, difficulty uint32) (*PoW, error) {
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return nil, ErrOutOfBound
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &PoW{Salt: salt, Params: params, Difficulty: difficulty}, nil
}

// FromMemory creates an unmined PoW with params derived from a target
// memory footprint.
func FromMemory(salt hash.Digest, target *memory.Memory, difficulty uint32) (*PoW, error) {
	params, err := balloon.ParamsFromMemory(target)
	if err != nil {
		return nil, err
	}
	return New(salt, params, difficulty)
}

// Mined reports whether the proof has been found.
func (p *PoW) Mined() bool {
	return p.Nonce != nil && p.Digest != nil
}

// Hasher returns the Balloon hasher used for each attempt.
func (p *PoW) Hasher() (*balloon.Hasher, error) {
	return balloon.NewHasher(p.Salt, p.Params)
}

// Memory returns the memory spent per mining attempt.
func (p *PoW) Memory() (*memory.Memory, error) {
	hasher, err := p.Hasher()
	if err != nil {
		return nil, err
	}
	return hasher.Memory()
}

// Target returns the difficulty threshold, re-checking the bounds.
func (p *PoW) Target() (Target, error) {
	if p.Difficulty < MinDifficulty || p.Difficulty > MaxDifficulty {
		return Target{}, ErrOutOfBound
	}
	return NewTarget(p.Difficulty)
}

// TargetBits returns the difficulty encoded in the target.
func (p *PoW) TargetBits() (uint32, error) {
	target, err := p.Target()
	if err != nil {
		return 0, err
	}
	return target.Bits(), nil
}

// attempt computes the candidate digest for a nonce: the Balloon hash
// of salt followed by the big-endian nonce.
func (p *PoW) attempt(nonce uint64) (hash.Digest, error) {
	hasher, err := p.Hasher()
	if err != nil {
		return hash.Digest{}, err
	}
	msg := make([]byte, 0, hash.DigestSize+8)
	msg = append(msg, p.Salt[:]...)
	msg = binary.BigEndian.AppendUint64(msg, nonce)
	return hasher.Hash(msg)
}

// Mine searches the nonce space until a digest below the target is
// found. Exhausting all 2^64 nonces is not an error: Mine returns nil
// and the proof stays unmined, so callers must check Mined.
func (p *PoW) Mine() error {
	return p.MineContext(context.Background())
}

// MineContext mines with cancellation support; when the context is
// cancelled the search stops and ctx.Err() is returned. With Threads
// above 1 the nonce space is sharded across strided parallel workers.
func (p *PoW) MineContext(ctx context.Context) error {
	target, err := p.Target()
	if err != nil {
		return err
	}
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.Threads > 1 {
		return p.mineParallel(ctx, target.Digest(), p.Threads)
	}
	return p.mineSingle(ctx, target.Digest())
}

// mineSingle scans nonces sequentially from 0, accepting the first hit.
func (p *PoW) mineSingle(ctx context.Context, target hash.Digest) error {
	for nonce := uint64(0); ; nonce++ {
		// Check cancellation every 65536 attempts.
		if nonce&0xFFFF == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		digest, err := p.attempt(nonce)
		if err != nil {
			return err
		}
		if digest.Less(target) {
			n, d := nonce, digest
			p.Nonce, p.Digest = &n, &d
			return nil
		}
		if nonce == math.MaxUint64 {
			return nil
		}
	}
}

// mineParallel shards the nonce space across strided workers (worker i
// starts at nonce i with step threads). The first valid result cancels
// the others.
func (p *PoW) mineParallel(parent context.Context, target hash.Digest, threads int) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	type result struct {
		nonce  uint64
		digest hash.Digest
		err    error
	}
	found := make(chan result, 1)

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		start := uint64(i)
		stride := uint64(threads)
		go func() {
			defer wg.Done()
			for nonce := start; ; nonce += stride {
				if (nonce/stride)&0xFFFF == 0 {
					select {
					case <-ctx.Done():
						return
					default:
					}
				}

				digest, err := p.attempt(nonce)
				if err != nil {
					select {
					case found <- result{err: err}:
					default:
					}
					cancel()
					return
				}
				if digest.Less(target) {
					select {
					case found <- result{nonce: nonce, digest: digest}:
					default:
					}
					cancel()
					return
				}

				// Stop before wrapping past the top of the partition.
				if nonce > math.MaxUint64-stride {
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(found)
	}()

	r, ok := <-found
	if !ok {
		// No worker reported: either the caller cancelled or the whole
		// nonce space was exhausted, which leaves the proof unmined.
		return parent.Err()
	}
	if r.err != nil {
		return r.err
	}
	n, d := r.nonce, r.digest
	p.Nonce, p.Digest = &n, &d
	return nil
}

// Verify reports whether the proof is mined and sound. An unmined proof
// verifies false without error. A mined proof whose digest is not below
// the target, or whose digest does not match a recomputation from the
// stored nonce, fails with ErrInvalidDigest.
func (p *PoW) Verify() (bool, error) {
	if p.Digest == nil {
		return false, nil
	}
	target, err := p.Target()
	if err != nil {
		return false, err
	}
	if !p.Digest.Less(target.Digest()) {
		return false, ErrInvalidDigest
	}
	if p.Nonce == nil {
		return false, nil
	}
	digest, err := p.attempt(*p.Nonce)
	if err != nil {
		return false, err
	}
	if *p.Digest != digest {
		return false, ErrInvalidDigest
	}
	return true, nil
}

// Validate fails with ErrNotFound when Verify reports an unmined proof,
// and propagates any verification error.
func (p *PoW) Validate() error {
	mined, err := p.Verify()
	if err != nil {
		return err
	}
	if !mined {
		return ErrNotFound
	}
	return nil
}
