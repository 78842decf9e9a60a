// Package fs provides file system adapters for specs and lockfiles.
package fs

import (
	"os"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/zerr"
)

// SpecReader implements ports.SpecReader.
type SpecReader struct{}

// NewSpecReader creates a new SpecReader.
func NewSpecReader() *SpecReader {
	return &SpecReader{}
}

// Read loads and parses the spec at path.
func (r *SpecReader) Read(path string) (*domain.EnvironmentSpec, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrSpecReadFailed.Error()), "path", path))
	}

	spec, err := domain.ParseSpec(raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid spec"), "path", path)
	}
	return spec, nil
}
