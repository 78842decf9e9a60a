package ports

import "context"

// PackageManager drives a conda-compatible package manager.
//
//go:generate mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// CreateEnvironment creates (or replaces) the environment name from the file at path.
	CreateEnvironment(ctx context.Context, name, path string) error

	// ExportEnvironment returns the fully resolved document of the environment name.
	ExportEnvironment(ctx context.Context, name string) ([]byte, error)

	// RemoveEnvironment deletes the environment name.
	RemoveEnvironment(ctx context.Context, name string) error
}
