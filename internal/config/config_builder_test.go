package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		sources []*StructuredConfig
		want    *StructuredConfig
	}{
		{
			name: "no sources",
			want: &StructuredConfig{},
		},
		{
			name: "disjoint sources are combined",
			sources: []*StructuredConfig{
				{App: App{Version: "1.0.0"}},
				{Storage: Storage{DB: DB{DSN: "sqlite://chat.db"}}},
			},
			want: &StructuredConfig{
				App:     App{Version: "1.0.0"},
				Storage: Storage{DB: DB{DSN: "sqlite://chat.db"}},
			},
		},
		{
			name: "later non-zero field wins, zero field keeps earlier value",
			sources: []*StructuredConfig{
				{App: App{Version: "1.0.0", TokenIssuer: "first"}},
				{App: App{TokenIssuer: "second"}},
			},
			want: &StructuredConfig{App: App{Version: "1.0.0", TokenIssuer: "second"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			b.configs = append(b.configs, tt.sources...)

			got, err := b.build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_SourceError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWithDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "go-chat-vault", cfg.App.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 10, cfg.App.PasswordHashCost)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.Empty(t, cfg.App.EncryptionKey)
	assert.Empty(t, cfg.App.TokenSignKey)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

func TestWithEnv(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION":      "env-version",
		"APP_TOKEN_ISSUER": "env-issuer",
	})

	b := newConfigBuilder()
	require.Same(t, b, b.withEnv())

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
}

func TestWithEnv_BadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_TOKEN_DURATION": "soon"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_PriorityOverEnv(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SERVER_ADDRESS":          "localhost:7000",
		"STORAGE_DB_DATABASE_URI": "sqlite://env.db",
	})

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-a", "localhost:8000"}).
		build()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8000", cfg.Server.HTTPAddress)
	assert.Equal(t, "sqlite://env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "go-chat-vault", cfg.App.TokenIssuer)
}

func TestWithFlags_Invalid(t *testing.T) {
	_, err := newConfigBuilder().withFlags([]string{"-a", "nowhere"}).build()
	assert.ErrorIs(t, err, ErrInvalidFlags)
}

func TestWithJSON(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.App.TokenIssuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	t.Run("no path is a no-op", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{})
		require.Same(t, b, b.withJSON())

		assert.NoError(t, b.err)
		assert.Len(t, b.configs, 1)
	})

	t.Run("file overrides earlier sources", func(t *testing.T) {
		cfg, err := newConfigBuilder().
			withDefaults().
			withFlags([]string{"-c", path, "-token-issuer", "flag-issuer"}).
			withJSON().
			build()
		require.NoError(t, err)

		assert.Equal(t, "json-version", cfg.App.Version)
		assert.Equal(t, "json-issuer", cfg.App.TokenIssuer)
		assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	})

	t.Run("last path wins", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs,
			&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
			&StructuredConfig{JSONFilePath: path},
		)
		b.withJSON()

		require.NoError(t, b.err)
		require.Len(t, b.configs, 3)
		assert.Equal(t, "json-version", b.configs[2].App.Version)
	})

	t.Run("missing file", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
		b.withJSON()
		assert.Error(t, b.err)
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))

		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: bad})
		b.withJSON()
		assert.Error(t, b.err)
	})

	t.Run("earlier error is kept", func(t *testing.T) {
		b := newConfigBuilder()
		b.err = assert.AnError
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
		b.withJSON()

		assert.ErrorIs(t, b.err, assert.AnError)
	})
}

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.EncryptionKey = testEncryptionKey
	cfg.Storage.DB.DSN = "sqlite://chat.db"
	return cfg
}

// TestValidate covers every rule checked before the server starts.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid development config without sign key",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name: "valid production config",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.Environment = EnvProduction
				cfg.App.TokenSignKey = "prod-secret"
			},
		},
		{
			name:    "missing encryption key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.EncryptionKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "encryption key is not hex",
			mutate:  func(cfg *StructuredConfig) { cfg.App.EncryptionKey = "zz" + testEncryptionKey[2:] },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "encryption key too short",
			mutate:  func(cfg *StructuredConfig) { cfg.App.EncryptionKey = testEncryptionKey[:32] },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "unknown environment",
			mutate:  func(cfg *StructuredConfig) { cfg.App.Environment = "staging" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "production without sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.Environment = EnvProduction },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "non-positive token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenDuration = -time.Second },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing server address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero auth burst",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.AuthRateBurst = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestGetClientConfig_Defaults verifies the client works without any server
// secrets in the environment.
func TestGetClientConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost:5000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
}

// TestGetClientConfig_FromEnv verifies ADAPTER_* variables reach the client view.
func TestGetClientConfig_FromEnv(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_ADDRESS":         "https://chat.example.com",
		"ADAPTER_REQUEST_TIMEOUT": "2s",
	})

	cfg, err := GetClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 2*time.Second, cfg.Adapter.RequestTimeout)
}
