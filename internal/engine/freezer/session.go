package freezer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/zerr"
)

// cleanupTimeout bounds the release of ephemeral resources once the freeze itself is done.
const cleanupTimeout = 2 * time.Minute

// scratch is a per-invocation working directory holding staged documents.
type scratch struct {
	dir string
}

// newScratch creates a scratch directory under tempDir whose name starts with the session
// prefix and purpose.
func newScratch(tempDir, purpose string) (*scratch, error) {
	dir, err := os.MkdirTemp(tempDir, domain.SessionPrefix+purpose+"-")
	if err != nil {
		return nil, domain.Tag(domain.ErrIO, zerr.Wrap(err, domain.ErrScratchCreateFailed.Error()))
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, domain.Tag(domain.ErrIO, zerr.Wrap(err, domain.ErrScratchCreateFailed.Error()))
	}
	return &scratch{dir: abs}, nil
}

func (s *scratch) path(name string) string {
	return filepath.Join(s.dir, name)
}

// stage writes the raw spec bytes into the scratch directory and returns their path.
func (s *scratch) stage(spec *domain.EnvironmentSpec) (string, error) {
	return s.write(domain.ScratchSpecFile, spec.Raw)
}

// write stores data as name inside the scratch directory and returns its path.
func (s *scratch) write(name string, data []byte) (string, error) {
	path := s.path(name)
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return "", domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrScratchStageFailed.Error()), "path", path))
	}
	return path, nil
}

func (s *scratch) release() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrCleanupFailed.Error()), "path", s.dir))
	}
	return nil
}

// releaseContext returns a context for releasing resources that survives cancellation of ctx.
func releaseContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
}

// joinRelease adds a failed release to *err.
func joinRelease(err *error, releaseErr error) {
	if releaseErr != nil {
		*err = errors.Join(*err, releaseErr)
	}
}

// step runs fn inside a span called name.
func step(ctx context.Context, tracer ports.Tracer, name string, fn func(context.Context) error) error {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	err := fn(ctx)
	span.RecordError(err)
	return err
}
