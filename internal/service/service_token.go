package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/metrics"
	"github.com/MKhiriev/go-chat-vault/internal/utils"
	"github.com/MKhiriev/go-chat-vault/models"
)

// DevelopmentTokenSignKey signs tokens when no key is configured outside
// production. Tokens signed with it are forgeable by anyone who reads this
// source.
const DevelopmentTokenSignKey = "go-chat-vault-insecure-development-sign-key"

// tokenService issues and verifies HS256 JWTs. All fields are read-only after
// construction.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now func() time.Time

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewTokenService builds a TokenService from cfg. An empty sign key is
// replaced by [DevelopmentTokenSignKey] with a warning; production configs
// never get here without a key because config validation rejects them.
func NewTokenService(cfg config.App, m *metrics.Metrics, logger *logger.Logger) TokenService {
	signKey := cfg.TokenSignKey
	if signKey == "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("APP_TOKEN_SIGN_KEY is not set, tokens are signed with the insecure development key")
		signKey = DevelopmentTokenSignKey
	}

	return &tokenService{
		tokenSignKey:  signKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           time.Now,
		metrics:       m,
		logger:        logger,
	}
}

// Issue signs a token for user that expires after the configured duration.
func (s *tokenService) Issue(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.UserID, user.Username, s.now(), s.tokenDuration, s.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify checks the signature, algorithm, issuer and expiry of tokenString.
// Every failure is reported as ErrTokenIsExpiredOrInvalid.
func (s *tokenService) Verify(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer, s.now)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		s.metrics.TokenVerification(metrics.OutcomeFailure)
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	s.metrics.TokenVerification(metrics.OutcomeSuccess)
	return token, nil
}
