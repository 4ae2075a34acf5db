// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Nested structs are
// resolved through their envPrefix tags (APP_, STORAGE_, SERVER_, ADAPTER_),
// so APP_ENCRYPTION_KEY lands in cfg.App.EncryptionKey. Unset variables leave
// the zero value, which mergo then treats as "not provided".
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
