package ports

import (
	"context"

	"go.trai.ch/condalock/internal/core/domain"
)

// ContainerRuntime drives a docker-compatible container runtime.
//
//go:generate mockgen -source=container.go -destination=mocks/mock_container.go -package=mocks
type ContainerRuntime interface {
	// BuildImage builds spec and returns the image reference. Building an already present
	// image is cheap.
	BuildImage(ctx context.Context, spec domain.BuildSpec) (string, error)

	// RunContainer runs spec to completion.
	RunContainer(ctx context.Context, spec domain.RunSpec) error

	// RemoveContainer force-removes the container name.
	RemoveContainer(ctx context.Context, name string) error
}
