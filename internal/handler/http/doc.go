// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the user store.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API under /api/users. Cross-cutting concerns such as bearer authentication,
// request tracing, access logging, request metrics and rate limiting of the
// credential endpoints are handled in this package before requests are
// delegated to the service layer.
package http
