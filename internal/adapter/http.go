package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/utils"
	"github.com/MKhiriev/go-chat-vault/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. It normalises adapterCfg.HTTPAddress ("localhost:8080"
// becomes "http://localhost:8080") and returns an error if it is empty or
// not a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores token (whitespace-trimmed) for the Authorization header of
// subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
	h.client.WithToken(h.token)
}

func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register POSTs to /api/users/register and stores the issued token.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/users/register", req)
}

// Login POSTs to /api/users/login and stores the issued token.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/users/login", req)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	var result models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if result.Token == "" {
		token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if err != nil {
			return models.AuthResponse{}, fmt.Errorf("%s parse bearer token: %w", path, err)
		}
		result.Token = token
	}

	h.SetToken(result.Token)
	h.logger.Debug().Str("user_id", result.User.ID).Msg("authenticated")
	return result, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.UserProfile, error) {
	var result models.ProfileResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	resp, err := req.SetResult(&result).Get("/api/users/me")
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, err
	}

	return result.User, nil
}

func (h *httpServerAdapter) List(ctx context.Context) ([]models.UserProfile, error) {
	var result models.UsersResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := req.SetResult(&result).Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return result.Users, nil
}

func (h *httpServerAdapter) UpdateProfile(ctx context.Context, body models.UpdateProfileRequest) (models.UserProfile, error) {
	var result models.ProfileResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	resp, err := req.SetBody(body).SetResult(&result).Patch("/api/users/me")
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, err
	}

	return result.User, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	var result models.VersionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return result.Version, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	if h.token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().SetContext(ctx), nil
}
