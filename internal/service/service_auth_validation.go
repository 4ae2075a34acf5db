package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chat-vault/internal/metrics"
	"github.com/MKhiriev/go-chat-vault/internal/validators"
	"github.com/MKhiriev/go-chat-vault/models"
)

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// AuthValidationService checks request bodies before they reach the wrapped
// AuthService. Rejections wrap ErrInvalidDataProvided.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
	metrics   *metrics.Metrics
}

func NewAuthValidationService(m *metrics.Metrics) AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
		metrics:   m,
	}
}

func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		v.metrics.Registration(metrics.OutcomeInvalid)
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Register(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		v.metrics.Login(metrics.OutcomeInvalid)
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.Authenticate(ctx, tokenString)
}

func (v *AuthValidationService) Me(ctx context.Context, tokenString string) (models.UserProfile, error) {
	return v.inner.Me(ctx, tokenString)
}

func (v *AuthValidationService) List(ctx context.Context) ([]models.UserProfile, error) {
	return v.inner.List(ctx)
}

func (v *AuthValidationService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.UserProfile, error) {
	if userID == "" {
		return models.UserProfile{}, ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateProfile(ctx, userID, req)
}

func (v *AuthValidationService) Wrap(wrapper AuthService) AuthService {
	v.inner = wrapper
	return v
}
