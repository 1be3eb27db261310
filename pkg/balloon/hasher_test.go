package balloon

import (
	"encoding/binary"
	"testing"

	"github.com/yobicash/yobicrypto/pkg/hash"
	"github.com/yobicash/yobicrypto/pkg/memory"
)

func testSalt(seed byte) hash.Digest {
	var salt hash.Digest
	for i := range salt {
		salt[i] = seed
	}
	return salt
}

func TestNewHasher(t *testing.T) {
	if _, err := NewHasher(testSalt(1), DefaultParams()); err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	if _, err := NewHasher(testSalt(1), Params{0, 1, 3}); err != ErrInvalidArgument {
		t.Fatalf("NewHasher err = %v, want ErrInvalidArgument", err)
	}
}

func TestHasherFromMemory(t *testing.T) {
	h, err := HasherFromMemory(testSalt(1), memory.FromUint64(129))
	if err != nil {
		t.Fatal(err)
	}
	if h.Params != (Params{2, 2, 3}) {
		t.Errorf("params = %v, want {2 2 3}", h.Params)
	}
	mem, err := h.Memory()
	if err != nil {
		t.Fatal(err)
	}
	if mem.Cmp(memory.FromUint64(129)) < 0 {
		t.Errorf("Memory() = %s, below target", mem)
	}
}

func TestHash_Deterministic(t *testing.T) {
	params, err := NewParams(4, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewHasher(testSalt(7), params)
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("the same message")
	a, err := h.Hash(msg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Hash(msg)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("repeated Hash differs: %s != %s", a, b)
	}
}

func TestHash_SingleSlot(t *testing.T) {
	// With s_cost 1 the whole computation is one primitive hash of
	// counter 0, the message, and the salt.
	salt := testSalt(3)
	h, err := NewHasher(salt, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("short message")
	got, err := h.Hash(msg)
	if err != nil {
		t.Fatal(err)
	}

	pre := binary.BigEndian.AppendUint32(nil, 0)
	pre = append(pre, msg...)
	pre = append(pre, salt[:]...)
	if want := hash.Sum(pre); got != want {
		t.Errorf("Hash = %s, want %s", got, want)
	}
}

func TestHash_FillOnly(t *testing.T) {
	// With t_cost 1 the mix phase never runs: the result is the last
	// slot of the fill chain.
	salt := testSalt(9)
	params, err := NewParams(3, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewHasher(salt, params)
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("fill only")
	got, err := h.Hash(msg)
	if err != nil {
		t.Fatal(err)
	}

	pre := binary.BigEndian.AppendUint32(nil, 0)
	pre = append(pre, msg...)
	pre = append(pre, salt[:]...)
	slot := hash.Sum(pre)
	for cnt := uint32(1); cnt < 3; cnt++ {
		pre = binary.BigEndian.AppendUint32(nil, cnt)
		pre = append(pre, slot[:]...)
		slot = hash.Sum(pre)
	}
	if got != slot {
		t.Errorf("Hash = %s, want fill chain result %s", got, slot)
	}
}

func TestHash_MixSkipsOuterSlots(t *testing.T) {
	// The mix loop runs m strictly between the first and last slot, so
	// with s_cost 2 extra rounds change nothing. Pinned on purpose:
	// existing digests depend on these bounds.
	salt := testSalt(5)
	msg := []byte("outer slots")

	one, err := NewHasher(salt, Params{SCost: 2, TCost: 1, Delta: 3})
	if err != nil {
		t.Fatal(err)
	}
	many, err := NewHasher(salt, Params{SCost: 2, TCost: 5, Delta: 3})
	if err != nil {
		t.Fatal(err)
	}

	a, err := one.Hash(msg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := many.Hash(msg)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("rounds reached the final slot: %s != %s", a, b)
	}
}

func TestHash_InputsMatter(t *testing.T) {
	params, err := NewParams(4, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	h1, err := NewHasher(testSalt(1), params)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := NewHasher(testSalt(2), params)
	if err != nil {
		t.Fatal(err)
	}

	a, err := h1.Hash([]byte("msg"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := h2.Hash([]byte("msg"))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("different salts produced the same digest")
	}

	c, err := h1.Hash([]byte("other"))
	if err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Error("different messages produced the same digest")
	}

	wider, err := NewHasher(testSalt(1), Params{SCost: 5, TCost: 2, Delta: 3})
	if err != nil {
		t.Fatal(err)
	}
	d, err := wider.Hash([]byte("msg"))
	if err != nil {
		t.Fatal(err)
	}
	if a == d {
		t.Error("different params produced the same digest")
	}
}

func TestHash_InvalidParams(t *testing.T) {
	h := &Hasher{Salt: testSalt(1), Params: Params{SCost: 1, TCost: 1, Delta: 2}}
	if _, err := h.Hash([]byte("x")); err != ErrInvalidArgument {
		t.Fatalf("Hash err = %v, want ErrInvalidArgument", err)
	}
}

func BenchmarkHash(b *testing.B) {
	h, err := NewHasher(testSalt(1), Params{SCost: 16, TCost: 4, Delta: 3})
	if err != nil {
		b.Fatal(err)
	}
	msg := []byte("benchmark message")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := h.Hash(msg); err != nil {
			b.Fatal(err)
		}
	}
}
