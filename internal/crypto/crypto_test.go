package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func mustKeyPair(t *testing.T) *KeyPair {
	t.Helper()

	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate key pair: %v", err)
	}
	return kp
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kp := mustKeyPair(t)

	plaintexts := [][]byte{
		[]byte("hello"),
		[]byte(""),
		bytes.Repeat([]byte{0xAB}, MaxPayloadSize),
	}

	for _, plaintext := range plaintexts {
		ciphertext, err := Encrypt(plaintext, kp.Public)
		if err != nil {
			t.Fatalf("encrypt %d bytes: %v", len(plaintext), err)
		}
		if bytes.Equal(ciphertext, plaintext) && len(plaintext) > 0 {
			t.Fatal("ciphertext equals plaintext")
		}

		got, err := Decrypt(ciphertext, kp.Private)
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
		}
	}
}

func TestEncryptRejectsOversizedPayload(t *testing.T) {
	kp := mustKeyPair(t)

	oversized := bytes.Repeat([]byte("x"), MaxPayloadSize+1)
	if _, err := Encrypt(oversized, kp.Public); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestDecryptWrongKeyFails(t *testing.T) {
	sender := mustKeyPair(t)
	other := mustKeyPair(t)

	ciphertext, err := Encrypt([]byte("secret"), sender.Public)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	_, err = Decrypt(ciphertext, other.Private)
	var cryptoErr *CryptoError
	if !errors.As(err, &cryptoErr) {
		t.Fatalf("expected CryptoError, got %v", err)
	}
}

func TestDecryptCorruptedCiphertextFails(t *testing.T) {
	kp := mustKeyPair(t)

	ciphertext, err := Encrypt([]byte("secret"), kp.Public)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	ciphertext[0] ^= 0xFF

	var cryptoErr *CryptoError
	if _, err := Decrypt(ciphertext, kp.Private); !errors.As(err, &cryptoErr) {
		t.Fatalf("expected CryptoError, got %v", err)
	}
}

func TestExportImportPublicKey(t *testing.T) {
	kp := mustKeyPair(t)

	exported, err := ExportPublicKey(kp.Public)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	imported, err := ImportPublicKey(exported)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.N.Cmp(kp.Public.N) != 0 || imported.E != kp.Public.E {
		t.Fatal("imported key does not match original")
	}

	// Encrypting with the imported key must stay decryptable.
	ciphertext, err := Encrypt([]byte("via imported key"), imported)
	if err != nil {
		t.Fatalf("encrypt with imported key: %v", err)
	}
	got, err := Decrypt(ciphertext, kp.Private)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if string(got) != "via imported key" {
		t.Fatalf("unexpected plaintext: %q", got)
	}
}

func TestImportPublicKeyRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not a key", "-----BEGIN PUBLIC KEY-----\nZZZZ\n-----END PUBLIC KEY-----"} {
		if _, err := ImportPublicKey(input); err == nil {
			t.Fatalf("expected error for input %q", input)
		}
	}
}
