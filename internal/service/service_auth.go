package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chat-vault/internal/crypto"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/metrics"
	"github.com/MKhiriev/go-chat-vault/internal/store"
	"github.com/MKhiriev/go-chat-vault/models"
)

// dummyPassword is hashed once at construction; its hash is compared against
// when a login names an unknown user, so both failure paths pay for one
// bcrypt comparison.
const dummyPassword = "go-chat-vault/no-such-user"

// authService is the concrete implementation of AuthService.
// It composes the user record model with the token service.
type authService struct {
	users  UserService
	tokens TokenService
	hasher crypto.PasswordHasher

	dummyHash string

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewAuthService constructs an AuthService. It fails only if the hasher
// cannot produce the dummy hash used for unknown usernames.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users UserService, tokens TokenService, hasher crypto.PasswordHasher, m *metrics.Metrics, logger *logger.Logger) (AuthService, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy password hash: %w", err)
	}

	return &authService{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: dummyHash,
		metrics:   m,
		logger:    logger,
	}, nil
}

// Register creates an account and signs the caller in.
//
// Returns the safe profile and a token, or:
//   - store.ErrUsernameAlreadyExists (wrapped) if the username is taken.
//   - ErrTokenCreationFailed (wrapped) if signing fails.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.Create(ctx, req)
	if err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			a.metrics.Registration(metrics.OutcomeConflict)
		} else {
			a.metrics.Registration(metrics.OutcomeError)
			log.Err(err).Str("username", req.Username).Msg("user registration failed")
		}
		return models.AuthResponse{}, fmt.Errorf("user registration failed: %w", err)
	}
	a.metrics.Registration(metrics.OutcomeSuccess)
	log.Info().Str("user_id", user.UserID).Str("username", user.Username).Msg("user registered")

	return a.respond(ctx, user)
}

// Login checks credentials and issues a token.
//
// An unknown username and a wrong password are indistinguishable to the
// caller: both yield ErrInvalidCredentials after one bcrypt comparison.
// A stored hash with an outdated cost is transparently upgraded.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.Verify(req.Password, a.dummyHash)
		a.metrics.Login(metrics.OutcomeFailure)
		log.Info().Str("username", req.Username).Msg("login failed")
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		a.metrics.Login(metrics.OutcomeError)
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.AuthResponse{}, fmt.Errorf("login failed: %w", err)
	}

	if !a.hasher.Verify(req.Password, user.PasswordHash) {
		a.metrics.Login(metrics.OutcomeFailure)
		log.Info().Str("username", req.Username).Msg("login failed")
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	if a.hasher.NeedsRehash(user.PasswordHash) {
		user = a.rehash(ctx, user, req.Password)
	}

	a.metrics.Login(metrics.OutcomeSuccess)
	log.Info().Str("user_id", user.UserID).Msg("user logged in")

	return a.respond(ctx, user)
}

// Authenticate verifies a bearer token and returns the identity it carries.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Token, error) {
	return a.tokens.Verify(ctx, tokenString)
}

// Me resolves the owner of tokenString to a safe profile. A valid token of a
// deleted account yields store.ErrNoUserWasFound (wrapped).
func (a *authService) Me(ctx context.Context, tokenString string) (models.UserProfile, error) {
	token, err := a.tokens.Verify(ctx, tokenString)
	if err != nil {
		return models.UserProfile{}, err
	}

	user, err := a.users.FindByID(ctx, token.UserID)
	if err != nil {
		return models.UserProfile{}, err
	}

	return a.users.SafeView(ctx, user), nil
}

// List returns the safe profiles of all users, newest first.
func (a *authService) List(ctx context.Context) ([]models.UserProfile, error) {
	users, err := a.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, a.users.SafeView(ctx, user))
	}

	return profiles, nil
}

// UpdateProfile applies req to the account of userID. The stored result is
// decrypted strictly, so an integrity failure is returned instead of masked.
func (a *authService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.UserProfile, error) {
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return models.UserProfile{}, err
	}

	updated, err := a.users.Update(ctx, user, req.Changes())
	if err != nil {
		return models.UserProfile{}, err
	}
	logger.FromContext(ctx).Info().Str("user_id", userID).Msg("profile updated")

	return a.users.Profile(ctx, updated)
}

func (a *authService) respond(ctx context.Context, user models.User) (models.AuthResponse, error) {
	token, err := a.tokens.Issue(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.UserID).Msg("token creation failed")
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		User:  a.users.SafeView(ctx, user),
		Token: token.SignedString,
	}, nil
}

// rehash stores a fresh hash of password for user. Failure is logged and the
// old hash stays in place; the login itself still succeeds.
func (a *authService) rehash(ctx context.Context, user models.User, password string) models.User {
	upgraded, err := a.users.Update(ctx, user, models.UserChanges{Password: &password})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("user_id", user.UserID).Msg("password hash upgrade failed")
		return user
	}

	a.metrics.PasswordRehash()
	return upgraded
}
