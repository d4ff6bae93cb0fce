package ioc

import (
	common "github.com/rivio-api/rivio-api/pkg/domain"
)

// EnvironmentConfig loads every env-driven setting this deployment needs
// via common.LoadConfig (pkg/domain/config.go). Kept as its own function so
// WithEnvFile doesn't need to know how config is actually sourced.
func EnvironmentConfig() (common.Config, error) {
	return common.LoadConfig(), nil
}
