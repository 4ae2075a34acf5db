package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-vault/internal/crypto"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/metrics"
	"github.com/MKhiriev/go-chat-vault/internal/store"
	"github.com/MKhiriev/go-chat-vault/internal/utils"
	"github.com/MKhiriev/go-chat-vault/models"
)

// idGenerator issues new user identifiers.
type idGenerator interface {
	Generate() string
}

// userService is the concrete implementation of UserService.
//
// Every write goes through sealUser first, so the repository only ever sees
// hashed passwords and encrypted PII.
type userService struct {
	userRepository store.UserRepository
	cipher         crypto.FieldCipher
	hasher         crypto.PasswordHasher

	ids idGenerator
	now func() time.Time

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewUserService constructs a UserService on top of the given repository and
// crypto primitives.
func NewUserService(userRepository store.UserRepository, cipher crypto.FieldCipher, hasher crypto.PasswordHasher, m *metrics.Metrics, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		cipher:         cipher,
		hasher:         hasher,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		metrics:        m,
		logger:         logger,
	}
}

// Create seals a new record from req and inserts it.
// A duplicate username yields store.ErrUsernameAlreadyExists.
func (s *userService) Create(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	now := s.timestamp()
	user := models.User{
		UserID:    s.ids.Generate(),
		Username:  req.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	changes := models.UserChanges{
		Email:    &req.Email,
		Password: &req.Password,
	}
	if req.DisplayName != "" {
		changes.DisplayName = &req.DisplayName
	}

	sealed, err := sealUser(user, changes, s.cipher, s.hasher)
	if err != nil {
		return models.User{}, fmt.Errorf("error sealing new user: %w", err)
	}

	created, err := s.userRepository.CreateUser(ctx, sealed)
	if err != nil {
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

func (s *userService) FindByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}
	return user, nil
}

func (s *userService) FindByID(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return user, nil
}

func (s *userService) ListAll(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.FindAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}
	return users, nil
}

// Update applies changes to user and writes the result. Fields not marked in
// changes keep their stored envelope or hash untouched.
func (s *userService) Update(ctx context.Context, user models.User, changes models.UserChanges) (models.User, error) {
	if changes.IsEmpty() {
		return user, nil
	}

	sealed, err := sealUser(user, changes, s.cipher, s.hasher)
	if err != nil {
		return models.User{}, fmt.Errorf("error sealing user changes: %w", err)
	}
	sealed.UpdatedAt = s.timestamp()

	updated, err := s.userRepository.UpdateUser(ctx, sealed)
	if err != nil {
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updated, nil
}

// SafeView builds the client-facing profile of user. An email that cannot be
// decrypted is shown as "", a display name that is absent or cannot be
// decrypted falls back to the username. Each fallback is logged and counted.
func (s *userService) SafeView(ctx context.Context, user models.User) models.UserProfile {
	log := logger.FromContext(ctx)

	email, err := s.cipher.Decrypt(user.Email)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.UserID).Str("field", "email").Msg("undecryptable field replaced with placeholder")
		s.metrics.DecryptFallback("email")
		email = ""
	}

	displayName, err := s.cipher.Decrypt(user.DisplayName)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.UserID).Str("field", "display_name").Msg("undecryptable field replaced with placeholder")
		s.metrics.DecryptFallback("display_name")
		displayName = ""
	}
	if displayName == "" {
		displayName = user.Username
	}

	return profileOf(user, email, displayName)
}

func (s *userService) Profile(ctx context.Context, user models.User) (models.UserProfile, error) {
	email, err := s.cipher.Decrypt(user.Email)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("error decrypting email of user %s: %w", user.UserID, err)
	}

	displayName, err := s.cipher.Decrypt(user.DisplayName)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("error decrypting display name of user %s: %w", user.UserID, err)
	}
	if displayName == "" {
		displayName = user.Username
	}

	return profileOf(user, email, displayName), nil
}

// timestamp returns the current time at the precision both database
// backends keep.
func (s *userService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// sealUser returns a copy of user with changes applied: a changed password
// is hashed, a changed email or display name is encrypted. Fields that are
// not marked in changes are copied as they are.
func sealUser(user models.User, changes models.UserChanges, cipher crypto.FieldCipher, hasher crypto.PasswordHasher) (models.User, error) {
	if changes.Password != nil {
		hash, err := hasher.Hash(*changes.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	if changes.Email != nil {
		envelope, err := cipher.Encrypt(*changes.Email)
		if err != nil {
			return models.User{}, fmt.Errorf("error encrypting email: %w", err)
		}
		user.Email = envelope
	}

	if changes.DisplayName != nil {
		envelope, err := cipher.Encrypt(*changes.DisplayName)
		if err != nil {
			return models.User{}, fmt.Errorf("error encrypting display name: %w", err)
		}
		user.DisplayName = envelope
	}

	return user, nil
}

func profileOf(user models.User, email, displayName string) models.UserProfile {
	return models.UserProfile{
		ID:          user.UserID,
		Username:    user.Username,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   user.CreatedAt,
	}
}
