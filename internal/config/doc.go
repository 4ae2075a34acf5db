// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads go-chat-vault settings.
//
// Sources are merged with mergo, each one overriding the non-zero fields of
// the previous: built-in defaults, environment (caarlos0/env), command-line
// flags, then the JSON file named by CONFIG / -c. The merged result is
// validated before it is returned, so a server never starts without a
// well-formed encryption key or, in production, a token signing key.
//
// [GetStructuredConfig] serves the server; [GetClientConfig] serves the CLI
// client and skips flags and server secrets.
package config
