package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-chat-vault/internal/metrics"
	"github.com/MKhiriev/go-chat-vault/internal/mock"
	"github.com/MKhiriev/go-chat-vault/internal/validators"
	"github.com/MKhiriev/go-chat-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestValidationService(t *testing.T) (AuthService, *mock.MockAuthService) {
	t.Helper()
	inner := mock.NewMockAuthService(gomock.NewController(t))
	return NewAuthValidationService(metrics.NewNop()).Wrap(inner), inner
}

func TestAuthValidationService_Register(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr bool
	}{
		{name: "valid", req: models.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "pw"}},
		{name: "missing username", req: models.RegisterRequest{Email: "bob@example.com", Password: "pw"}, wantErr: true},
		{name: "blank username", req: models.RegisterRequest{Username: "   ", Email: "bob@example.com", Password: "pw"}, wantErr: true},
		{name: "bad email", req: models.RegisterRequest{Username: "bob", Email: "bob", Password: "pw"}, wantErr: true},
		{name: "missing password", req: models.RegisterRequest{Username: "bob", Email: "bob@example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, inner := newTestValidationService(t)
			if !tt.wantErr {
				inner.EXPECT().Register(gomock.Any(), tt.req).Return(models.AuthResponse{Token: "t"}, nil)
			}

			resp, err := svc.Register(context.Background(), tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDataProvided)
				assert.ErrorIs(t, err, validators.ErrValidationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "t", resp.Token)
		})
	}
}

func TestAuthValidationService_Login(t *testing.T) {
	svc, inner := newTestValidationService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "bob"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	req := models.LoginRequest{Username: "bob", Password: "pw"}
	inner.EXPECT().Login(gomock.Any(), req).Return(models.AuthResponse{}, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthValidationService_UpdateProfile(t *testing.T) {
	svc, inner := newTestValidationService(t)

	_, err := svc.UpdateProfile(context.Background(), "u1", models.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrNoFieldsToUpdate)

	_, err = svc.UpdateProfile(context.Background(), "", models.UpdateProfileRequest{DisplayName: strPtr("x")})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	req := models.UpdateProfileRequest{DisplayName: strPtr("Robert")}
	inner.EXPECT().UpdateProfile(gomock.Any(), "u1", req).Return(models.UserProfile{DisplayName: "Robert"}, nil)
	profile, err := svc.UpdateProfile(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "Robert", profile.DisplayName)
}

func TestAuthValidationService_PassesThroughUnvalidatedCalls(t *testing.T) {
	svc, inner := newTestValidationService(t)

	inner.EXPECT().Authenticate(gomock.Any(), "tok").Return(models.Token{UserID: "u1"}, nil)
	inner.EXPECT().Me(gomock.Any(), "tok").Return(models.UserProfile{ID: "u1"}, nil)
	inner.EXPECT().List(gomock.Any()).Return([]models.UserProfile{{ID: "u1"}}, nil)

	token, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", token.UserID)

	profile, err := svc.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)

	profiles, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}
