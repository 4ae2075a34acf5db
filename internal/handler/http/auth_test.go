// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/crypto"
	"github.com/MKhiriev/go-chat-vault/internal/service"
	"github.com/MKhiriev/go-chat-vault/internal/store"
	"github.com/MKhiriev/go-chat-vault/internal/validators"
	"github.com/MKhiriev/go-chat-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var bobProfile = models.UserProfile{
	ID:          "u1",
	Username:    "bob",
	Email:       "bob@example.com",
	DisplayName: "Bob",
	CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
}

func doRequest(t *testing.T, h *Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	h, mocks := newTestHandler(t, config.Server{})
	want := models.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "pw", DisplayName: "Bob"}
	mocks.auth.EXPECT().Register(gomock.Any(), want).
		Return(models.AuthResponse{User: bobProfile, Token: "jwt"}, nil)

	rr := doRequest(t, h, http.MethodPost, "/api/users/register",
		`{"username":"bob","email":"bob@example.com","password":"pw","displayName":"Bob"}`, "")

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Bearer jwt", rr.Header().Get("Authorization"))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, bobProfile, resp.User)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed JSON",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrInvalidJSON.Error(),
		},
		{
			name:       "validation failure",
			body:       `{"username":"bob"}`,
			serviceErr: fmt.Errorf("%w: %w: email is required", service.ErrInvalidDataProvided, validators.ErrValidationFailed),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid data provided: validation failed: email is required",
		},
		{
			name:       "duplicate username",
			body:       `{"username":"bob","email":"bob@example.com","password":"pw"}`,
			serviceErr: fmt.Errorf("user registration failed: %w", store.ErrUsernameAlreadyExists),
			wantStatus: http.StatusConflict,
			wantError:  "username already exists",
		},
		{
			name:       "password over bcrypt byte limit",
			body:       `{"username":"bob","email":"bob@example.com","password":"pw"}`,
			serviceErr: fmt.Errorf("user registration failed: error hashing password: %w", crypto.ErrPasswordTooLong),
			wantStatus: http.StatusBadRequest,
			wantError:  "password must be at most 72 bytes",
		},
		{
			name:       "storage failure is not exposed",
			body:       `{"username":"bob","email":"bob@example.com","password":"pw"}`,
			serviceErr: fmt.Errorf("%w: connection refused on 10.0.0.5", store.ErrStorage),
			wantStatus: http.StatusInternalServerError,
			wantError:  http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t, config.Server{})
			if tt.serviceErr != nil {
				mocks.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, tt.serviceErr)
			}

			rr := doRequest(t, h, http.MethodPost, "/api/users/register", tt.body, "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rr))
			assert.Empty(t, rr.Header().Get("Authorization"))
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	h, mocks := newTestHandler(t, config.Server{})
	mocks.auth.EXPECT().Login(gomock.Any(), models.LoginRequest{Username: "bob", Password: "pw"}).
		Return(models.AuthResponse{User: bobProfile, Token: "jwt"}, nil)

	rr := doRequest(t, h, http.MethodPost, "/api/users/login", `{"username":"bob","password":"pw"}`, "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer jwt", rr.Header().Get("Authorization"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h, mocks := newTestHandler(t, config.Server{})
	mocks.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, service.ErrInvalidCredentials)

	rr := doRequest(t, h, http.MethodPost, "/api/users/login", `{"username":"bob","password":"nope"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "invalid username or password", decodeError(t, rr))
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe(t *testing.T) {
	h, mocks := newTestHandler(t, config.Server{})
	mocks.auth.EXPECT().Me(gomock.Any(), "jwt").Return(bobProfile, nil)

	rr := doRequest(t, h, http.MethodGet, "/api/users/me", "", "jwt")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.ProfileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, bobProfile, resp.User)
}

func TestMe_Errors(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		serviceErr error
		wantStatus int
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic Ym9iOnB3", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer jwt", serviceErr: service.ErrTokenIsExpiredOrInvalid, wantStatus: http.StatusUnauthorized},
		{name: "deleted account", header: "Bearer jwt", serviceErr: store.ErrNoUserWasFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t, config.Server{})
			if tt.serviceErr != nil {
				mocks.auth.EXPECT().Me(gomock.Any(), "jwt").Return(models.UserProfile{}, tt.serviceErr)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.Init().ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ─────────────────────────────────────────────
// updateProfile / listUsers
// ─────────────────────────────────────────────

func TestUpdateProfile(t *testing.T) {
	h, mocks := newTestHandler(t, config.Server{})
	displayName := "Robert"
	updated := bobProfile
	updated.DisplayName = displayName

	gomock.InOrder(
		mocks.auth.EXPECT().Authenticate(gomock.Any(), "jwt").Return(models.Token{UserID: "u1", Username: "bob"}, nil),
		mocks.auth.EXPECT().UpdateProfile(gomock.Any(), "u1", models.UpdateProfileRequest{DisplayName: &displayName}).Return(updated, nil),
	)

	rr := doRequest(t, h, http.MethodPatch, "/api/users/me", `{"displayName":"Robert"}`, "jwt")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.ProfileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Robert", resp.User.DisplayName)
}

func TestUpdateProfile_IntegrityFailure(t *testing.T) {
	h, mocks := newTestHandler(t, config.Server{})
	mocks.auth.EXPECT().Authenticate(gomock.Any(), "jwt").Return(models.Token{UserID: "u1"}, nil)
	mocks.auth.EXPECT().UpdateProfile(gomock.Any(), "u1", gomock.Any()).
		Return(models.UserProfile{}, fmt.Errorf("decrypt: %w", crypto.ErrIntegrity))

	rr := doRequest(t, h, http.MethodPatch, "/api/users/me", `{"email":"new@example.com"}`, "jwt")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "integrity")
}

func TestListUsers(t *testing.T) {
	h, mocks := newTestHandler(t, config.Server{})
	alice := models.UserProfile{ID: "u2", Username: "alice", DisplayName: "alice"}

	mocks.auth.EXPECT().Authenticate(gomock.Any(), "jwt").Return(models.Token{UserID: "u1"}, nil)
	mocks.auth.EXPECT().List(gomock.Any()).Return([]models.UserProfile{alice, bobProfile}, nil)

	rr := doRequest(t, h, http.MethodGet, "/api/users", "", "jwt")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.UsersResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []models.UserProfile{alice, bobProfile}, resp.Users)
}

func TestListUsers_RequiresToken(t *testing.T) {
	h, mocks := newTestHandler(t, config.Server{})
	mocks.auth.EXPECT().Authenticate(gomock.Any(), "forged").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	rr := doRequest(t, h, http.MethodGet, "/api/users", "", "forged")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rr))
}
