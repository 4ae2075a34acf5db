// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-chat-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// UserService owns the user record model: it seals plaintext input into a
// storable [models.User] and turns stored records back into safe profiles.
type UserService interface {
	Create(ctx context.Context, req models.RegisterRequest) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, userID string) (models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user models.User, changes models.UserChanges) (models.User, error)

	// SafeView never fails: undecryptable fields degrade to placeholders.
	SafeView(ctx context.Context, user models.User) models.UserProfile
	// Profile is the strict variant of SafeView; decrypt failures are returned.
	Profile(ctx context.Context, user models.User) (models.UserProfile, error)
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(ctx context.Context, user models.User) (models.Token, error)
	Verify(ctx context.Context, tokenString string) (models.Token, error)
}

// AuthService is the use-case layer behind the HTTP auth API.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Authenticate(ctx context.Context, tokenString string) (models.Token, error)
	Me(ctx context.Context, tokenString string) (models.UserProfile, error)
	List(ctx context.Context) ([]models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.UserProfile, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
