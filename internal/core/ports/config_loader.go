package ports

import "go.trai.ch/condalock/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the process environment.
	Load() (domain.Config, error)
}
