package freezer

import (
	"context"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
)

// LocalFreezer resolves a spec on the host by creating and exporting an ephemeral
// environment with the package manager.
type LocalFreezer struct {
	manager ports.PackageManager
	tracer  ports.Tracer
	logger  ports.Logger
	tempDir string
}

// NewLocalFreezer creates a new LocalFreezer. Scratch directories are created under tempDir.
func NewLocalFreezer(manager ports.PackageManager, tracer ports.Tracer, logger ports.Logger, tempDir string) *LocalFreezer {
	return &LocalFreezer{
		manager: manager,
		tracer:  tracer,
		logger:  logger,
		tempDir: tempDir,
	}
}

// Resolve implements ports.Resolver. The ephemeral environment and the scratch directory
// are released on every return path.
func (f *LocalFreezer) Resolve(ctx context.Context, spec *domain.EnvironmentSpec, _ domain.Platform) (doc []byte, err error) {
	dir, err := newScratch(f.tempDir, "freeze")
	if err != nil {
		return nil, err
	}
	defer func() { joinRelease(&err, dir.release()) }()

	specPath, err := dir.stage(spec)
	if err != nil {
		return nil, err
	}

	env := domain.NewSessionName()
	f.logger.Info("creating ephemeral environment " + env)

	defer func() {
		releaseCtx, cancel := releaseContext(ctx)
		defer cancel()
		joinRelease(&err, step(releaseCtx, f.tracer, "conda.remove", func(ctx context.Context) error {
			return f.manager.RemoveEnvironment(ctx, env)
		}))
	}()

	if err := step(ctx, f.tracer, "conda.create", func(ctx context.Context) error {
		return f.manager.CreateEnvironment(ctx, env, specPath)
	}); err != nil {
		return nil, err
	}

	var exported []byte
	if err := step(ctx, f.tracer, "conda.export", func(ctx context.Context) error {
		var exportErr error
		exported, exportErr = f.manager.ExportEnvironment(ctx, env)
		return exportErr
	}); err != nil {
		return nil, err
	}

	return domain.NormalizeResolved(exported, spec.Name)
}
