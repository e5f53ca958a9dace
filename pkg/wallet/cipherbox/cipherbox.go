// Package cipherbox provides authenticated symmetric encryption for secret
// payloads using AES-256-GCM.
//
// A Box is constructed once per process from the deployment's key material
// and is safe for concurrent use; the key is read-only after construction
// and never leaves the package.
package cipherbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/argon2"

	"keyguardian/wallet/pkg/wallet"
)

const (
	// NonceSize is the AES-GCM nonce size in bytes.
	NonceSize = 12

	// KeySize is the AES-256 key size in bytes.
	KeySize = 32
)

// argon2id parameters for passphrase-derived keys.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Box seals and opens secret payloads under a single AES-256-GCM key.
type Box struct {
	aead   cipher.AEAD
	logger *slog.Logger
}

// New creates a Box from key material.
//
// Key material is interpreted in two forms:
//   - a base64 encoding (standard or URL alphabet, padded or raw) of exactly
//     32 bytes is used directly as the AES-256 key
//   - anything else is treated as a passphrase and stretched to a 32-byte
//     key with argon2id, salted with the SHA-256 of the passphrase so the
//     same passphrase yields the same key across restarts
//
// Empty key material is rejected with wallet.ErrInvalidKey. Callers treat a
// New failure as fatal: no secrets can be handled without a key.
func New(keyMaterial string) (*Box, error) {
	if keyMaterial == "" {
		return nil, fmt.Errorf("%w: key material is empty", wallet.ErrInvalidKey)
	}

	key, derived := resolveKey(keyMaterial)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wallet.ErrInvalidKey, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wallet.ErrInvalidKey, err)
	}

	logger := slog.Default().With("component", "wallet.cipherbox")
	logger.Info("cipher box initialized",
		"cipher", "aes-256-gcm",
		"key_derived", derived,
	)

	return &Box{aead: aead, logger: logger}, nil
}

// resolveKey turns key material into a 32-byte key. Returns the key and
// whether it was derived from a passphrase rather than decoded.
func resolveKey(material string) ([]byte, bool) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if decoded, err := enc.DecodeString(material); err == nil && len(decoded) == KeySize {
			return decoded, false
		}
	}

	salt := sha256.Sum256([]byte(material))
	return argon2.IDKey([]byte(material), salt[:16], argonTime, argonMemory, argonThreads, KeySize), true
}

// GenerateKey returns fresh random key material in the base64 form accepted
// by New, suitable for provisioning a new deployment.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Seal encrypts and authenticates plaintext. The result is
// nonce || ciphertext || tag with a fresh random nonce, so sealing the same
// plaintext twice produces different output; each output opens
// independently.
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return b.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open authenticates and decrypts a sealed payload, accepting either the raw
// byte form produced by Seal or its base64 text encoding; the input is
// normalized before processing. Any authentication failure, truncation, or
// key mismatch is reported as wallet.ErrInvalidCiphertext.
func (b *Box) Open(ciphertext []byte) ([]byte, error) {
	ciphertext = normalize(ciphertext)

	if len(ciphertext) < NonceSize+b.aead.Overhead() {
		return nil, fmt.Errorf("%w: payload too short (%d bytes)", wallet.ErrInvalidCiphertext, len(ciphertext))
	}

	nonce, sealed := ciphertext[:NonceSize], ciphertext[NonceSize:]
	plaintext, err := b.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		b.logger.Warn("ciphertext failed authentication", "size", len(ciphertext))
		return nil, fmt.Errorf("%w: authentication failed", wallet.ErrInvalidCiphertext)
	}

	return plaintext, nil
}

// SealString seals a plaintext string into the base64 text form used by the
// persistence layer.
func (b *Box) SealString(plaintext string) (string, error) {
	sealed, err := b.Seal([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenString opens a payload in either text or raw form and returns the
// plaintext as a string.
func (b *Box) OpenString(ciphertext string) (string, error) {
	plaintext, err := b.Open([]byte(ciphertext))
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// normalize maps the interchangeable ciphertext representations to raw
// bytes. A payload that strictly decodes as base64 is taken in its decoded
// form; anything else is assumed to already be raw.
func normalize(ciphertext []byte) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(string(ciphertext)); err == nil {
		return decoded
	}
	if decoded, err := base64.URLEncoding.DecodeString(string(ciphertext)); err == nil {
		return decoded
	}
	return ciphertext
}
