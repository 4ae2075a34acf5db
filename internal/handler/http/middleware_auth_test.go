package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/service"
	"github.com/MKhiriev/go-chat-vault/internal/utils"
	"github.com/MKhiriev/go-chat-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuth_StoresIdentityInContext(t *testing.T) {
	h, mocks := newTestHandler(t, config.Server{})
	mocks.auth.EXPECT().Authenticate(gomock.Any(), "jwt").Return(models.Token{UserID: "u1", Username: "bob"}, nil)

	var gotID, gotName string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		gotName, _ = utils.GetUsernameFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer jwt")
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "u1", gotID)
	assert.Equal(t, "bob", gotName)
}

func TestAuth_RejectsUniformly(t *testing.T) {
	tests := []struct {
		name   string
		header string
		verify bool
	}{
		{name: "missing header"},
		{name: "scheme only", header: "Bearer"},
		{name: "empty token", header: "Bearer "},
		{name: "extra parts", header: "Bearer a b"},
		{name: "token rejected", header: "Bearer jwt", verify: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t, config.Server{})
			if tt.verify {
				mocks.auth.EXPECT().Authenticate(gomock.Any(), "jwt").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rr, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rr.Body.String())
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := bearerToken(req)
	assert.ErrorIs(t, err, ErrEmptyAuthorizationHeader)

	req.Header.Set("Authorization", "Token abc")
	_, err = bearerToken(req)
	assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)

	req.Header.Set("Authorization", "Bearer abc")
	token, err := bearerToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
