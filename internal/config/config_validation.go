// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.MaxAuthAttempts < 1 {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.ReplicaRoot == "" {
		return fmt.Errorf("%w: replica root is required", ErrInvalidStorageConfigs)
	}

	if _, err := bcrypt.Cost([]byte(cfg.Auth.PasswordHash)); err != nil {
		return fmt.Errorf("%w: password hash: %w", ErrInvalidAuthConfigs, err)
	}

	if cfg.Auth.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAuthConfigs)
	}

	if cfg.RequestTimeout < 0 || !strings.Contains(cfg.HTTPAddress, ":") {
		return ErrInvalidServerConfigs
	}

	return nil
}
