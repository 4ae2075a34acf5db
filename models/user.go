package models

import "time"

// User is the persisted account record.
//
// Email and DisplayName hold cipher envelopes (nonce:tag:ciphertext, hex),
// never plaintext, once the record has passed through the sealing step of
// the user service. Username stays in plaintext because it is the lookup key.
// The record itself is never serialised to clients; use [UserProfile].
type User struct {
	// UserID is the opaque identifier assigned at creation (UUIDv7).
	UserID string `json:"-"`

	// Username is the unique public handle and login key.
	Username string `json:"-"`

	// Email is the encrypted email envelope.
	Email string `json:"-"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// DisplayName is the encrypted display name envelope, or empty.
	DisplayName string `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserProfile is the safe, decrypted view of a [User] returned to clients.
// It never carries the password hash.
type UserProfile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserChanges describes plaintext modifications to apply to a [User] before
// it is written. Only non-nil fields are considered modified, so unchanged
// fields are neither re-hashed nor re-encrypted.
type UserChanges struct {
	Email       *string
	DisplayName *string
	Password    *string
}

// IsEmpty reports whether no field is marked as modified.
func (c UserChanges) IsEmpty() bool {
	return c.Email == nil && c.DisplayName == nil && c.Password == nil
}

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,notblank,max=64"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,maxbytes=72"`
	DisplayName string `json:"displayName" validate:"max=128"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the body of PATCH /api/users/me.
// Absent fields are left untouched.
type UpdateProfileRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,max=128"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=1,maxbytes=72"`
}

// Changes converts the request into [UserChanges].
func (r UpdateProfileRequest) Changes() UserChanges {
	return UserChanges{
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Password:    r.Password,
	}
}
