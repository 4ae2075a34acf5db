package http

import (
	"net/http"

	"github.com/MKhiriev/go-chat-vault/internal/utils"
	"github.com/MKhiriev/go-chat-vault/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	utils.WriteJSON(w, models.VersionResponse{Version: serverVersion}, http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:  "ok",
		Message: "go-chat-vault server is running",
	}, http.StatusOK)
}
