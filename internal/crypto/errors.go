// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrConfiguration is returned when secret material supplied at startup is
	// missing or malformed (e.g. the field encryption key does not decode to
	// exactly 32 bytes). It is fatal: the server must not start without it.
	ErrConfiguration = errors.New("invalid crypto configuration")

	// ErrIntegrity is returned when a cipher envelope fails authentication:
	// the tag does not verify, the key is wrong, or the envelope is malformed.
	ErrIntegrity = errors.New("ciphertext integrity check failed")

	// ErrPasswordTooLong is returned by Hash for passwords over 72 bytes.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)
