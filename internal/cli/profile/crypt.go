package profile

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Encryption errors.
var (
	ErrPassphraseTooWeak = errors.New("profile: passphrase too weak (minimum 8 characters)")
	ErrDecryptionFailed  = errors.New("profile: decryption failed - wrong passphrase or corrupted store")
)

const (
	// magic identifies the store format and doubles as the AEAD
	// additional data.
	magic = "ZKP1"

	// MinPassphraseLength is the minimum passphrase length.
	MinPassphraseLength = 8

	// SaltLength is the fixed salt length used in key derivation.
	SaltLength = 16

	// Argon2id parameters for key derivation from passphrase.
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
)

// deriveKey derives a ChaCha20-Poly1305 key from the passphrase via
// Argon2id.
func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argon2Time, argon2Memory, argon2Threads, chacha20poly1305.KeySize)
}

// encrypt seals plaintext into the store format:
// magic | salt | nonce | ciphertext+tag.
func encrypt(passphrase, plaintext []byte) ([]byte, error) {
	if len(passphrase) < MinPassphraseLength {
		return nil, ErrPassphraseTooWeak
	}

	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("profile: generate salt: %w", err)
	}

	aead, err := chacha20poly1305.New(deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("profile: init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("profile: generate nonce: %w", err)
	}

	blob := make([]byte, 0, len(magic)+len(salt)+len(nonce)+len(plaintext)+aead.Overhead())
	blob = append(blob, magic...)
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	return aead.Seal(blob, nonce, plaintext, []byte(magic)), nil
}

// decrypt opens a store blob produced by encrypt.
func decrypt(passphrase, blob []byte) ([]byte, error) {
	header := len(magic) + SaltLength + chacha20poly1305.NonceSize
	if len(blob) < header || string(blob[:len(magic)]) != magic {
		return nil, ErrDecryptionFailed
	}

	salt := blob[len(magic) : len(magic)+SaltLength]
	nonce := blob[len(magic)+SaltLength : header]

	aead, err := chacha20poly1305.New(deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("profile: init cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, blob[header:], []byte(magic))
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
