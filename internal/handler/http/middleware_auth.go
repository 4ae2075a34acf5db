package http

import (
	"net/http"

	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/utils"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the token from the "Authorization" header, verifies it via
// [service.AuthService.Authenticate] and, on success, stores the caller's
// identity in the request context (see [utils.WithUser]) before delegating
// to the next handler.
//
// A missing header, a malformed header and every kind of token failure are
// answered with the same 401 body.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		l := logger.FromRequest(r).With().Str("user_id", token.UserID).Logger()
		ctx = utils.WithUser(l.WithContext(ctx), token.UserID, token.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token string from the "Authorization" header of r.
//
// It returns the following sentinel errors:
//   - [ErrEmptyAuthorizationHeader] if the header is absent.
//   - [ErrInvalidAuthorizationHeader] if it is not "Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}

	return tokenString, nil
}
