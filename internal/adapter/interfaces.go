// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport for talking to the
// go-chat-vault server.
//
// The primary abstraction is [ServerAdapter]; the package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-chat-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter defines communication with the go-chat-vault server.
// Implementations handle serialisation, the bearer token header and the
// mapping of HTTP failures to the sentinel errors of this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Register creates an account. On success the returned token is stored
	// via SetToken.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates with username and password. On success the
	// returned token is stored via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Me returns the profile of the token owner.
	Me(ctx context.Context) (models.UserProfile, error)

	// List returns every user profile, newest first.
	List(ctx context.Context) ([]models.UserProfile, error)

	// UpdateProfile changes the fields set in req.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserProfile, error)

	// Version returns the server's reported build version.
	Version(ctx context.Context) (string, error)
}
