// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aliceProfile = models.UserProfile{ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice"}

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

// ── NewHTTPServerAdapter ────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: " https://chat.example.com/ ", want: "https://chat.example.com"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	a, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())
	assert.Nil(t, a)
	assert.Error(t, err)
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestRegister_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		writeJSON(t, w, http.StatusCreated, models.AuthResponse{User: aliceProfile, Token: "jwt-1"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, aliceProfile, resp.User)
	assert.Equal(t, "jwt-1", a.Token())
}

func TestLogin_FallsBackToAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer header-token")
		writeJSON(t, w, http.StatusOK, models.AuthResponse{User: aliceProfile})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "header-token", resp.Token)
	assert.Equal(t, "header-token", a.Token())
}

func TestLogin_ErrorMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, models.ErrorResponse{Error: "nope"})
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw"})

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "nope")
			assert.Empty(t, a.Token())
		})
	}
}

func TestErrorMapping_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502: upstream down")
}

// ── authenticated calls ─────────────────────────────────────────────────────

func TestAuthenticatedCalls_SendBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer jwt" {
			writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/users/me":
			writeJSON(t, w, http.StatusOK, models.ProfileResponse{User: aliceProfile})
		case r.Method == http.MethodGet && r.URL.Path == "/api/users":
			writeJSON(t, w, http.StatusOK, models.UsersResponse{Users: []models.UserProfile{aliceProfile}})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/users/me":
			var req models.UpdateProfileRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			updated := aliceProfile
			updated.DisplayName = *req.DisplayName
			writeJSON(t, w, http.StatusOK, models.ProfileResponse{User: updated})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	_, err := a.Me(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	a.SetToken(" jwt ")

	me, err := a.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, aliceProfile, me)

	users, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.UserProfile{aliceProfile}, users)

	displayName := "Al"
	updated, err := a.UpdateProfile(ctx, models.UpdateProfileRequest{DisplayName: &displayName})
	require.NoError(t, err)
	assert.Equal(t, "Al", updated.DisplayName)

	a.SetToken("stale")
	_, err = a.Me(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.VersionResponse{Version: "v1.2.3"})
	}))
	defer srv.Close()

	version, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", version)
}
