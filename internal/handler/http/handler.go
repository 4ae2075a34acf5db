package http

import (
	"time"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/metrics"
	"github.com/MKhiriev/go-chat-vault/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	limiters       *rateLimiterRegistry
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		metrics:        m,
		limiters:       newRateLimiterRegistry(cfg.AuthRateLimit, cfg.AuthRateBurst),
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
