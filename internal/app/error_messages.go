// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-chat-vault server handlers and middleware.
//
// All Msg* constants are client-facing strings written into the "error"
// field of JSON error bodies. They are deliberately generic: none of them
// reveals whether a username exists or why a token was rejected.
package app

const (
	// MsgInvalidCredentials is returned for every failed login, whether the
	// username is unknown or the password is wrong.
	MsgInvalidCredentials = "invalid username or password"

	// MsgUnauthorized is returned when a bearer token is missing, malformed,
	// expired, or fails verification.
	MsgUnauthorized = "unauthorized"

	// MsgUsernameTaken is returned when registration hits an existing username.
	MsgUsernameTaken = "username already exists"

	// MsgUserNotFound is returned when an authenticated caller's record no
	// longer exists.
	MsgUserNotFound = "user not found"

	// MsgNotFound is returned for unknown routes and unsupported methods.
	MsgNotFound = "not found"

	// MsgTooManyRequests is returned by the auth rate limiter.
	MsgTooManyRequests = "too many requests"

	// MsgInternalServerError is returned for any failure the client cannot
	// resolve: storage outages, integrity failures, token signing errors.
	MsgInternalServerError = "Internal Server Error"
)
