package ports

import "go.trai.ch/condalock/internal/core/domain"

// SpecReader loads environment specs.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SpecReader interface {
	// Read loads and parses the spec at path.
	Read(path string) (*domain.EnvironmentSpec, error)
}

// LockfileStore persists lockfiles.
type LockfileStore interface {
	// Write stores doc at path behind a sigil line carrying hash. The write is atomic.
	Write(path string, hash domain.ContentHash, doc []byte) error

	// Read returns the hash carried by the lockfile at path and the document without its
	// sigil line.
	Read(path string) (domain.ContentHash, []byte, error)

	// Discover returns the per-platform lockfiles next to specPath, sorted.
	Discover(specPath string) ([]string, error)
}
