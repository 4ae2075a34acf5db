package models

// AuthResponse is returned by register and login: the caller's safe profile
// plus a freshly issued bearer token.
type AuthResponse struct {
	User  UserProfile `json:"user"`
	Token string      `json:"token"`
}

// ProfileResponse wraps a single safe profile, as returned by GET/PATCH /me.
type ProfileResponse struct {
	User UserProfile `json:"user"`
}

// UsersResponse lists safe profiles, newest first.
type UsersResponse struct {
	Users []UserProfile `json:"users"`
}

// ErrorResponse is the body of every non-2xx JSON response. Messages are
// generic and never expose internal details.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the root liveness endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// VersionResponse is returned by GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
}
