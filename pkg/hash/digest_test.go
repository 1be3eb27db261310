package hash

import (
	"strings"
	"testing"
)

func TestSum(t *testing.T) {
	// FIPS 180-2 vectors.
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty input",
			input: []byte{},
			want: "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce" +
				"47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		},
		{
			name:  "abc",
			input: []byte("abc"),
			want: "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
				"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sum(tt.input)
			if got.String() != tt.want {
				t.Errorf("Sum(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestSum_Deterministic(t *testing.T) {
	data := []byte("deterministic test input")
	if Sum(data) != Sum(data) {
		t.Error("Sum is not deterministic")
	}
}

func TestFromBytes(t *testing.T) {
	d := Sum([]byte("x"))
	got, err := FromBytes(d.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Errorf("FromBytes(Bytes()) = %s, want %s", got, d)
	}

	for _, n := range []int{0, 32, 63, 65} {
		if _, err := FromBytes(make([]byte, n)); err != ErrInvalidLength {
			t.Errorf("FromBytes(%d bytes) err = %v, want ErrInvalidLength", n, err)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	d := Sum([]byte("hex"))
	s := d.String()
	if s != strings.ToLower(s) {
		t.Error("hex encoding must be lowercase")
	}
	got, err := FromHex(s)
	if err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Errorf("FromHex(String()) = %s, want %s", got, d)
	}
}

func TestFromHex_Invalid(t *testing.T) {
	if _, err := FromHex("not hex!"); err != ErrInvalidFormat {
		t.Fatalf("FromHex err = %v, want ErrInvalidFormat", err)
	}
	if _, err := FromHex("abcd"); err != ErrInvalidLength {
		t.Fatalf("FromHex short err = %v, want ErrInvalidLength", err)
	}
}

func TestOrdering(t *testing.T) {
	var lo, hi Digest
	hi[0] = 1

	if !lo.Less(hi) {
		t.Error("digest with smaller leading byte must compare below")
	}
	if hi.Less(lo) {
		t.Error("ordering reversed")
	}
	if lo.Cmp(lo) != 0 {
		t.Error("digest must equal itself")
	}

	// The comparison is big-endian: the first differing byte decides.
	var a, b Digest
	a[0], a[63] = 1, 0
	b[0], b[63] = 1, 255
	if !a.Less(b) || a.Cmp(b) != -1 {
		t.Error("trailing bytes must break ties")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := Sum([]byte("json"))
	raw, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var got Digest
	if err := got.UnmarshalJSON(raw); err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Errorf("JSON round trip = %s, want %s", got, d)
	}
}

func TestIsZero(t *testing.T) {
	var zero Digest
	if !zero.IsZero() {
		t.Error("zero digest should report IsZero")
	}
	if Sum(nil).IsZero() {
		t.Error("SHA-512 of empty input is not zero")
	}
}
