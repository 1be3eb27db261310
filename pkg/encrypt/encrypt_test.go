package encrypt

import (
	"bytes"
	"testing"
)

func TestSharedKey_Symmetric(t *testing.T) {
	alice, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}
	bob, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	ab, err := SharedKey(alice, bob.Public())
	if err != nil {
		t.Fatal(err)
	}
	ba, err := SharedKey(bob, alice.Public())
	if err != nil {
		t.Fatal(err)
	}

	if len(ab) != KeySize {
		t.Fatalf("shared key length = %d, want %d", len(ab), KeySize)
	}
	if !bytes.Equal(ab, ba) {
		t.Error("both sides of the exchange must derive the same key")
	}
}

func TestSharedKey_DistinctPairs(t *testing.T) {
	alice, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}
	bob, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}
	carol, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	ab, err := SharedKey(alice, bob.Public())
	if err != nil {
		t.Fatal(err)
	}
	ac, err := SharedKey(alice, carol.Public())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(ab, ac) {
		t.Error("different peers produced the same shared key")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	alice, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}
	bob, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	plain := []byte("a payload that is not block aligned.")
	ciphertext, err := EncryptFor(alice, bob.Public(), plain)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(ciphertext, plain) {
		t.Error("ciphertext leaks the plaintext")
	}

	got, err := DecryptFrom(bob, alice.Public(), ciphertext)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("decrypted %q, want %q", got, plain)
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	alice, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}
	bob, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	ciphertext, err := EncryptFor(alice, bob.Public(), []byte("payload"))
	if err != nil {
		t.Fatal(err)
	}
	ciphertext[len(ciphertext)-1] ^= 1

	if _, err := DecryptFrom(bob, alice.Public(), ciphertext); err != ErrDecryptionFailed {
		t.Fatalf("Decrypt of tampered ciphertext err = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	alice, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}
	bob, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}
	eve, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	ciphertext, err := EncryptFor(alice, bob.Public(), []byte("for bob only"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecryptFrom(eve, alice.Public(), ciphertext); err != ErrDecryptionFailed {
		t.Fatalf("Decrypt with wrong key err = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecrypt_TooShort(t *testing.T) {
	key := make([]byte, KeySize)
	if _, err := Decrypt(key, []byte{1, 2, 3}); err != ErrInvalidLength {
		t.Fatalf("Decrypt err = %v, want ErrInvalidLength", err)
	}
}

func TestEncrypt_BadKeyLength(t *testing.T) {
	if _, err := Encrypt(make([]byte, 16), []byte("x")); err != ErrInvalidLength {
		t.Fatalf("Encrypt err = %v, want ErrInvalidLength", err)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	sk, err := GenerateSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	gotSK, err := SecretKeyFromBytes(sk.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gotSK.Bytes(), sk.Bytes()) {
		t.Error("secret key bytes round trip mismatch")
	}

	pk := sk.Public()
	gotPK, err := PublicKeyFromBytes(pk.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gotPK.Bytes(), pk.Bytes()) {
		t.Error("public key bytes round trip mismatch")
	}

	fromHex, err := PublicKeyFromHex(pk.String())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(fromHex.Bytes(), pk.Bytes()) {
		t.Error("public key hex round trip mismatch")
	}
}

func TestKeyFromBytes_BadLength(t *testing.T) {
	if _, err := SecretKeyFromBytes(make([]byte, 31)); err != ErrInvalidLength {
		t.Fatalf("SecretKeyFromBytes err = %v, want ErrInvalidLength", err)
	}
	if _, err := PublicKeyFromBytes(make([]byte, 32)); err != ErrInvalidLength {
		t.Fatalf("PublicKeyFromBytes err = %v, want ErrInvalidLength", err)
	}
	if _, err := SecretKeyFromBytes(make([]byte, 32)); err != ErrInvalidKey {
		t.Fatalf("SecretKeyFromBytes(zero) err = %v, want ErrInvalidKey", err)
	}
}
