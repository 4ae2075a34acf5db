// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the auth
// service.
//
// [UserValidator] wraps go-playground/validator with the struct tags declared
// on the models request types, plus a "notblank" rule for usernames.
// Failures are returned as [ErrValidationFailed]-wrapped errors naming each
// offending field, which the HTTP layer surfaces as a 400 body.
package validators

import "context"

// Validator checks a request value. When fields are given, only those
// struct fields are validated (used for partial updates).
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
