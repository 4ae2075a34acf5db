package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-chat-vault/models"
)

const contentTypeJSON = "application/json"

// WriteJSON marshals body and writes it with statusCode and a JSON content
// type. The body is encoded before any header is sent, so a value that
// cannot be marshalled turns into a plain 500 instead of a half-written
// response. It returns the number of body bytes written.
func WriteJSON(w http.ResponseWriter, body any, statusCode int) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding response body: %w", err)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)

	return w.Write(payload)
}

// WriteError writes {"error": message} with statusCode. message is sent to
// the client verbatim and must not carry internal details.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}
