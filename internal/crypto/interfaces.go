// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the server-side cryptographic primitives of the user
// store: authenticated encryption of individual text fields and adaptive
// password hashing.
//
// Both primitives are constructed once at startup from explicit configuration
// and are safe for concurrent use; they hold no mutable state after
// construction.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// FieldCipher encrypts and decrypts single text fields at rest.
//
// Envelopes have the textual form hex(nonce):hex(tag):hex(ciphertext).
// Empty input is returned unchanged by both methods.
type FieldCipher interface {
	// Encrypt seals plaintext under a fresh random nonce.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens an envelope produced by Encrypt. Any tampering, wrong key,
	// or malformed envelope yields an error wrapping [ErrIntegrity].
	Decrypt(envelope string) (string, error)
}

// PasswordHasher produces and checks one-way, salted, self-describing
// password hashes.
type PasswordHasher interface {
	// Hash returns the adaptive hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. It never fails loudly:
	// a malformed hash simply does not match.
	Verify(password, hash string) bool

	// NeedsRehash reports whether hash was produced with a work factor other
	// than the currently configured one.
	NeedsRehash(hash string) bool
}
