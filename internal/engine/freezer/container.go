package freezer

import (
	"context"
	"os"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/zerr"
)

// containerPackageManager is the package manager available inside the base image.
const containerPackageManager = "conda"

// ContainerFreezer resolves a spec for another platform inside a disposable container.
type ContainerFreezer struct {
	runtime   ports.ContainerRuntime
	tracer    ports.Tracer
	logger    ports.Logger
	baseImage string
	tempDir   string
	host      func() (domain.Platform, error)
}

// ContainerOption configures a ContainerFreezer.
type ContainerOption func(*ContainerFreezer)

// WithContainerHost fixes the platform the ContainerFreezer believes it runs on.
func WithContainerHost(p domain.Platform) ContainerOption {
	return func(f *ContainerFreezer) {
		f.host = func() (domain.Platform, error) { return p, nil }
	}
}

// NewContainerFreezer creates a new ContainerFreezer building on baseImage.
func NewContainerFreezer(
	runtime ports.ContainerRuntime,
	tracer ports.Tracer,
	logger ports.Logger,
	baseImage string,
	tempDir string,
	opts ...ContainerOption,
) *ContainerFreezer {
	f := &ContainerFreezer{
		runtime:   runtime,
		tracer:    tracer,
		logger:    logger,
		baseImage: baseImage,
		tempDir:   tempDir,
		host:      domain.HostPlatform,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BuildSpec describes the freeze image for target.
func (f *ContainerFreezer) BuildSpec(target domain.Platform) domain.BuildSpec {
	return domain.BuildSpec{
		BaseImage: f.baseImage,
		Platform:  target.ContainerPlatform(),
		WorkDir:   domain.ContainerWorkDir,
		Steps: [][]string{
			{containerPackageManager, "config", "--set", "always_yes", "true"},
			{containerPackageManager, "clean", "--all", "--yes"},
		},
		Labels: map[string]string{
			"org.opencontainers.image.title": domain.FreezeImageRepository,
			"org.condalock.base":             f.baseImage,
		},
	}
}

// RunSpec describes the container resolving the spec staged in dir into an environment
// called env.
func (f *ContainerFreezer) RunSpec(image, name, env, dir string, target domain.Platform) domain.RunSpec {
	specPath := domain.ContainerWorkDir + "/" + domain.ScratchSpecFile
	lockPath := domain.ContainerWorkDir + "/" + domain.ScratchLockFile
	return domain.RunSpec{
		Image:    image,
		Name:     name,
		Platform: target.ContainerPlatform(),
		WorkDir:  domain.ContainerWorkDir,
		Mounts:   []domain.Mount{{Source: dir, Target: domain.ContainerWorkDir}},
		Script: [][]string{
			{containerPackageManager, "env", "create", "--force", "--quiet", "--name", env, "--file", specPath},
			{containerPackageManager, "env", "export", "--name", env, "--file", lockPath},
		},
	}
}

// Resolve implements ports.Resolver. Only a macOS host resolving for a container platform
// is accepted; any other pair fails before anything is built. The container and the
// scratch directory are released on every return path.
func (f *ContainerFreezer) Resolve(ctx context.Context, spec *domain.EnvironmentSpec, target domain.Platform) (doc []byte, err error) {
	host, err := f.host()
	if err != nil {
		return nil, err
	}
	if host != domain.PlatformMacOS || target.ContainerPlatform() == "" {
		return nil, domain.UnsupportedPairError(host, target)
	}

	var image string
	if err := step(ctx, f.tracer, "image.build", func(ctx context.Context) error {
		var buildErr error
		image, buildErr = f.runtime.BuildImage(ctx, f.BuildSpec(target))
		return buildErr
	}); err != nil {
		return nil, err
	}

	dir, err := newScratch(f.tempDir, "freeze")
	if err != nil {
		return nil, err
	}
	defer func() { joinRelease(&err, dir.release()) }()

	if _, err := dir.stage(spec); err != nil {
		return nil, err
	}

	session := domain.NewSessionName()
	run := f.RunSpec(image, session, session, dir.dir, target)

	defer func() {
		releaseCtx, cancel := releaseContext(ctx)
		defer cancel()
		joinRelease(&err, step(releaseCtx, f.tracer, "container.remove", func(ctx context.Context) error {
			return f.runtime.RemoveContainer(ctx, session)
		}))
	}()

	f.logger.Info("resolving " + spec.Name + " for " + target.DisplayName() + " in container " + session)
	if err := step(ctx, f.tracer, "container.run", func(ctx context.Context) error {
		return f.runtime.RunContainer(ctx, run)
	}); err != nil {
		return nil, err
	}

	harvested, err := f.harvest(dir)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeResolved(harvested, spec.Name)
}

func (f *ContainerFreezer) harvest(dir *scratch) ([]byte, error) {
	path := dir.path(domain.ScratchLockFile)
	data, err := os.ReadFile(path) //nolint:gosec // path is inside our scratch directory
	if err != nil {
		return nil, domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrHarvestFailed.Error()), "path", path))
	}
	if len(data) == 0 {
		return nil, domain.Tag(domain.ErrProcess, domain.Detail(domain.ErrEmptyExport, "path", path))
	}
	return data, nil
}
