package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const (
	// keySize is the AES-256 key length in bytes.
	keySize = 32
	// nonceSize is the per-call random nonce length in bytes (128 bits).
	nonceSize = 16
	// tagSize is the GCM authentication tag length in bytes (128 bits).
	tagSize = 16

	// envelopeSeparator never occurs inside a hex segment.
	envelopeSeparator = ":"
)

// aesFieldCipher is the AES-256-GCM implementation of [FieldCipher].
type aesFieldCipher struct {
	aead cipher.AEAD

	// random is the nonce source. Always crypto/rand outside of tests.
	random io.Reader
}

// NewFieldCipher constructs a [FieldCipher] from a hex-encoded 256-bit key
// (64 hex characters).
//
// Returns an error wrapping [ErrConfiguration] if the key is empty, is not
// valid hex, or does not decode to exactly 32 bytes.
func NewFieldCipher(hexKey string) (FieldCipher, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return nil, fmt.Errorf("%w: encryption key is not set", ErrConfiguration)
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key is not valid hex: %w", ErrConfiguration, err)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: encryption key must decode to %d bytes, got %d", ErrConfiguration, keySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %w", ErrConfiguration, err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm: %w", ErrConfiguration, err)
	}

	return &aesFieldCipher{aead: aead, random: rand.Reader}, nil
}

// Encrypt implements [FieldCipher]. A new nonce is read from the CSPRNG on
// every call; nonces are never cached or derived.
func (c *aesFieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return plaintext, nil
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Seal returns ciphertext || tag.
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		hex.EncodeToString(nonce),
		hex.EncodeToString(tag),
		hex.EncodeToString(ciphertext),
	}, envelopeSeparator), nil
}

// Decrypt implements [FieldCipher].
func (c *aesFieldCipher) Decrypt(envelope string) (string, error) {
	if envelope == "" {
		return envelope, nil
	}

	nonce, tag, ciphertext, err := splitEnvelope(envelope)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIntegrity, err)
	}

	return string(plaintext), nil
}

// splitEnvelope decodes the three hex segments of an envelope and checks the
// fixed-size ones.
func splitEnvelope(envelope string) (nonce, tag, ciphertext []byte, err error) {
	parts := strings.Split(envelope, envelopeSeparator)
	if len(parts) != 3 {
		return nil, nil, nil, fmt.Errorf("%w: envelope has %d segments, want 3", ErrIntegrity, len(parts))
	}

	if nonce, err = hex.DecodeString(parts[0]); err != nil || len(nonce) != nonceSize {
		return nil, nil, nil, fmt.Errorf("%w: malformed nonce segment", ErrIntegrity)
	}
	if tag, err = hex.DecodeString(parts[1]); err != nil || len(tag) != tagSize {
		return nil, nil, nil, fmt.Errorf("%w: malformed tag segment", ErrIntegrity)
	}
	if ciphertext, err = hex.DecodeString(parts[2]); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: malformed ciphertext segment", ErrIntegrity)
	}

	return nonce, tag, ciphertext, nil
}
