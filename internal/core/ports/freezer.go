package ports

import (
	"context"

	"go.trai.ch/condalock/internal/core/domain"
)

// Resolver turns a spec into the fully pinned document for one target platform.
//
//go:generate mockgen -source=freezer.go -destination=mocks/mock_freezer.go -package=mocks
type Resolver interface {
	// Resolve returns the resolved document of spec. Its name field equals spec.Name and
	// it carries no install prefix.
	Resolve(ctx context.Context, spec *domain.EnvironmentSpec, target domain.Platform) ([]byte, error)
}
