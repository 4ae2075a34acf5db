// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/hex"
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
//
// The field encryption key is never defaulted: a missing or malformed key is
// a fatal configuration error. The token signing key may only be omitted
// outside production.
func (cfg *StructuredConfig) validate() error {
	if err := validateEncryptionKey(cfg.App.EncryptionKey); err != nil {
		return err
	}

	switch cfg.App.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}

	if cfg.App.IsProduction() && cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required in production", ErrInvalidAppConfigs)
	}

	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token issuer and a positive token duration are required", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Server.AuthRateLimit <= 0 || cfg.Server.AuthRateBurst <= 0 {
		return fmt.Errorf("%w: auth rate limit and burst must be positive", ErrInvalidServerConfigs)
	}

	return nil
}

func validateEncryptionKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: encryption key is required (64 hex chars = 32 bytes)", ErrInvalidAppConfigs)
	}

	raw, err := hex.DecodeString(key)
	if err != nil || len(raw) != 32 {
		return fmt.Errorf("%w: encryption key must be 64 hex chars (32 bytes)", ErrInvalidAppConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
