// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-chat-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists [models.User] records. It stores whatever it is
// given: sealing (hashing and encryption) happens before a record reaches it.
type UserRepository interface {
	// CreateUser inserts a new record. A duplicate username yields
	// [ErrUsernameAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByUsername returns [ErrNoUserWasFound] when no record matches.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// FindUserByID returns [ErrNoUserWasFound] when no record matches.
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	// FindAllUsers returns every record, newest first.
	FindAllUsers(ctx context.Context) ([]models.User, error)
	// UpdateUser overwrites the mutable columns (email, password hash,
	// display name, updated_at) of an existing record.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// ErrorClassificator inspects driver errors of one database backend.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
