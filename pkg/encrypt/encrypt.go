// Package encrypt implements ECIES-style hybrid encryption. A shared
// secret agreed over secp256k1 ECDH is stretched with HKDF-SHA512 into
// an AES-256-GCM key for the payload.
package encrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/hkdf"
)

// Encryption errors.
var (
	ErrInvalidLength    = errors.New("encrypt: malformed key or ciphertext length")
	ErrInvalidFormat    = errors.New("encrypt: invalid hex string")
	ErrInvalidKey       = errors.New("encrypt: not a valid key")
	ErrDecryptionFailed = errors.New("encrypt: message authentication failed")
)

// Sizes in bytes.
const (
	// KeySize is the symmetric key width (AES-256).
	KeySize = 32
	// SecretKeySize is a serialized secret scalar.
	SecretKeySize = 32
	// PublicKeySize is a compressed curve point.
	PublicKeySize = 33
)

// hkdfInfo domain-separates the derived symmetric keys.
var hkdfInfo = []byte("yobicrypto/encrypt/v1")

// SecretKey is the private half of an encryption keypair.
type SecretKey struct {
	key *secp256k1.PrivateKey
}

// GenerateSecretKey creates a random secret key.
func GenerateSecretKey() (*SecretKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &SecretKey{key: key}, nil
}

// SecretKeyFromBytes parses a 32-byte secret scalar.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	if len(b) != SecretKeySize {
		return nil, ErrInvalidLength
	}
	key := secp256k1.PrivKeyFromBytes(b)
	if key.Key.IsZero() {
		return nil, ErrInvalidKey
	}
	return &SecretKey{key: key}, nil
}

// SecretKeyFromHex parses a secret key from hex.
func SecretKeyFromHex(s string) (*SecretKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return SecretKeyFromBytes(b)
}

// Public returns the matching public key.
func (sk *SecretKey) Public() *PublicKey {
	return &PublicKey{key: sk.key.PubKey()}
}

// Bytes serializes the secret scalar.
func (sk *SecretKey) Bytes() []byte {
	return sk.key.Serialize()
}

// PublicKey is the public half of an encryption keypair.
type PublicKey struct {
	key *secp256k1.PublicKey
}

// PublicKeyFromBytes parses a 33-byte compressed point.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, ErrInvalidLength
	}
	key, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return &PublicKey{key: key}, nil
}

// PublicKeyFromHex parses a public key from hex.
func PublicKeyFromHex(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return PublicKeyFromBytes(b)
}

// Bytes serializes the point in compressed form.
func (pk *PublicKey) Bytes() []byte {
	return pk.key.SerializeCompressed()
}

// String returns the hex encoding of the compressed point.
func (pk *PublicKey) String() string {
	return hex.EncodeToString(pk.Bytes())
}

// SharedKey derives the symmetric key for an (sk, pk) pair. Both sides
// of an exchange derive the same key: SharedKey(a, B) == SharedKey(b, A).
func SharedKey(sk *SecretKey, pk *PublicKey) ([]byte, error) {
	secret := secp256k1.GenerateSharedSecret(sk.key, pk.key)
	r := hkdf.New(sha512.New, secret, nil, hkdfInfo)
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt seals plain with AES-256-GCM under key. The random nonce is
// prepended to the returned ciphertext.
func Encrypt(key, plain []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

// Decrypt opens a ciphertext produced by Encrypt.
func Decrypt(key, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, ErrInvalidLength
	}
	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plain, nil
}

// EncryptFor seals plain for the holder of pk, using the sender's sk.
func EncryptFor(sk *SecretKey, pk *PublicKey, plain []byte) ([]byte, error) {
	key, err := SharedKey(sk, pk)
	if err != nil {
		return nil, err
	}
	return Encrypt(key, plain)
}

// DecryptFrom opens a ciphertext sealed by the holder of pk for sk.
func DecryptFrom(sk *SecretKey, pk *PublicKey, ciphertext []byte) ([]byte, error) {
	key, err := SharedKey(sk, pk)
	if err != nil {
		return nil, err
	}
	return Decrypt(key, ciphertext)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidLength
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
