package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-chat-vault/internal/app"
	"github.com/MKhiriev/go-chat-vault/internal/crypto"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/service"
	"github.com/MKhiriev/go-chat-vault/internal/store"
	"github.com/MKhiriev/go-chat-vault/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                     http.StatusBadRequest,
	ErrEmptyAuthorizationHeader:        http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader:      http.StatusUnauthorized,
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrStorage:               http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,

	crypto.ErrIntegrity:       http.StatusInternalServerError,
	crypto.ErrPasswordTooLong: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the client-facing text for err. Only validation
// failures describe the input; everything else gets a fixed message so that
// no internal detail leaks and authentication failures look alike.
func messageFromError(err error, status int) string {
	switch {
	case errors.Is(err, service.ErrInvalidDataProvided), errors.Is(err, ErrInvalidJSON):
		return err.Error()
	case errors.Is(err, crypto.ErrPasswordTooLong):
		return crypto.ErrPasswordTooLong.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return app.MsgInvalidCredentials
	case status == http.StatusUnauthorized:
		return app.MsgUnauthorized
	case status == http.StatusConflict:
		return app.MsgUsernameTaken
	case status == http.StatusNotFound:
		return app.MsgUserNotFound
	default:
		return app.MsgInternalServerError
	}
}

// writeServiceError maps err to a status and a JSON error body. Server-side
// failures are logged at error level, client errors at debug level.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="go-chat-vault"`)
	}
	utils.WriteError(w, messageFromError(err, status), status)
}
