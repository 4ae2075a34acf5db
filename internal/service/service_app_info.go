package service

import (
	"context"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
)

type appInfoService struct {
	appVersion string
}

// NewAppInfoService returns the service behind GET /api/version.
func NewAppInfoService(cfg config.App, log *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	log.Debug().Str("version", cfg.Version).Str("environment", cfg.Environment).Msg("app info service is ready")

	return &appInfoService{appVersion: cfg.Version}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}
