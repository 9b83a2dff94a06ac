// Package crypto wraps the asymmetric operations the relay performs on
// message payloads: RSA-OAEP over 2048-bit keys with SHA-256, plus PEM
// serialization for shipping public keys over the wire.
package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

const (
	// KeyBits is the RSA modulus size for generated key pairs.
	KeyBits = 2048

	// MaxPayloadSize is the largest plaintext a single Encrypt call accepts:
	// k - 2*hLen - 2 for a 2048-bit key with SHA-256 padding.
	MaxPayloadSize = KeyBits/8 - 2*sha256.Size - 2

	publicKeyPEMType = "PUBLIC KEY"
)

var (
	// ErrPayloadTooLarge is returned when a plaintext exceeds MaxPayloadSize.
	// OAEP has a hard per-call ceiling; callers must reject oversized
	// payloads up front instead of letting them fail silently.
	ErrPayloadTooLarge = errors.New("payload exceeds encryption size limit")

	// ErrMalformedKey is returned when key material cannot be parsed or is
	// not an RSA key.
	ErrMalformedKey = errors.New("malformed key material")
)

// CryptoError wraps a failed encrypt or decrypt operation. The relay logs
// these and passes the affected message through untouched rather than
// dropping it.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("crypto %s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error { return e.Err }

// KeyPair holds one session's asymmetric keys. The private key never
// leaves its holder.
type KeyPair struct {
	Public  *rsa.PublicKey
	Private *rsa.PrivateKey
}

// GenerateKeyPair produces a fresh 2048-bit RSA key pair.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, KeyBits)
	if err != nil {
		return nil, &CryptoError{Op: "generate", Err: err}
	}
	return &KeyPair{Public: &priv.PublicKey, Private: priv}, nil
}

// Encrypt seals plaintext for the holder of the matching private key.
func Encrypt(plaintext []byte, pub *rsa.PublicKey) ([]byte, error) {
	if pub == nil {
		return nil, &CryptoError{Op: "encrypt", Err: ErrMalformedKey}
	}
	if len(plaintext) > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}
	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return nil, &CryptoError{Op: "encrypt", Err: err}
	}
	return ciphertext, nil
}

// Decrypt opens ciphertext with the private key. Corruption or a key
// mismatch yields a CryptoError; callers must not crash the relay on it.
func Decrypt(ciphertext []byte, priv *rsa.PrivateKey) ([]byte, error) {
	if priv == nil {
		return nil, &CryptoError{Op: "decrypt", Err: ErrMalformedKey}
	}
	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
	if err != nil {
		return nil, &CryptoError{Op: "decrypt", Err: err}
	}
	return plaintext, nil
}

// ExportPublicKey renders a public key as a PEM string for transmission.
func ExportPublicKey(pub *rsa.PublicKey) (string, error) {
	if pub == nil {
		return "", ErrMalformedKey
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}
	block := &pem.Block{Type: publicKeyPEMType, Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// ImportPublicKey parses a PEM string produced by ExportPublicKey (or any
// PKIX-encoded RSA public key).
func ImportPublicKey(s string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(s))
	if block == nil {
		return nil, ErrMalformedKey
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, ErrMalformedKey
	}
	return pub, nil
}
