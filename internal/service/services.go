package service

import (
	"fmt"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/crypto"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/metrics"
	"github.com/MKhiriev/go-chat-vault/internal/store"
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices builds the crypto primitives from cfg and wires every service
// on top of storages. A malformed encryption key is returned as
// crypto.ErrConfiguration.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	cipher, err := crypto.NewFieldCipher(cfg.App.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("error creating field cipher: %w", err)
	}
	hasher := crypto.NewBcryptHasher(cfg.App.PasswordHashCost)

	users := NewUserService(storages.UserRepository, cipher, hasher, m, logger)
	tokens := NewTokenService(cfg.App, m, logger)

	authService, err := NewAuthService(users, tokens, hasher, m, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthValidationService(m).Wrap(authService),
		AppInfoService: appInfoService,
	}, nil
}
