// Package docker drives a docker-compatible container runtime through its CLI.
package docker

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runtime implements ports.ContainerRuntime.
type Runtime struct {
	runner  ports.CommandRunner
	logger  ports.Logger
	exe     string
	tempDir string
}

// NewRuntime creates a Runtime invoking exe. Build contexts are created under tempDir.
func NewRuntime(runner ports.CommandRunner, logger ports.Logger, exe, tempDir string) *Runtime {
	return &Runtime{
		runner:  runner,
		logger:  logger,
		exe:     exe,
		tempDir: tempDir,
	}
}

// BuildImage builds spec under its content-derived tag. An image already carrying the tag
// is reused.
func (r *Runtime) BuildImage(ctx context.Context, spec domain.BuildSpec) (tag string, err error) {
	tag = spec.ImageTag()

	if _, inspectErr := r.runner.Run(ctx, r.command("image", "inspect", "--format", "{{.Id}}", tag)); inspectErr == nil {
		r.logger.Debug("reusing image " + tag)
		return tag, nil
	}

	dockerfile, err := RenderDockerfile(spec)
	if err != nil {
		return "", domain.Tag(domain.ErrProcess, zerr.With(zerr.Wrap(err, domain.ErrImageBuildFailed.Error()), "image", tag))
	}

	dir, err := os.MkdirTemp(r.tempDir, "condalock-build-")
	if err != nil {
		return "", domain.Tag(domain.ErrIO, zerr.Wrap(err, domain.ErrScratchCreateFailed.Error()))
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			err = errors.Join(err, domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(rmErr, domain.ErrCleanupFailed.Error()), "path", dir)))
		}
	}()

	path := filepath.Join(dir, "Dockerfile")
	if err := os.WriteFile(path, dockerfile, domain.FilePerm); err != nil {
		return "", domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrScratchStageFailed.Error()), "path", path))
	}

	args := []string{"build", "--tag", tag, "--file", path}
	if spec.Platform != "" {
		args = append(args, "--platform", spec.Platform)
	}
	args = append(args, dir)

	r.logger.Info("building freeze image " + tag)
	if _, err := r.runner.Run(ctx, r.command(args...)); err != nil {
		return "", domain.Tag(domain.ErrProcess, zerr.With(zerr.Wrap(err, domain.ErrImageBuildFailed.Error()), "image", tag))
	}
	return tag, nil
}

// RunContainer runs spec.Script inside a new container named spec.Name and waits for it.
// The container is left in place for RemoveContainer.
func (r *Runtime) RunContainer(ctx context.Context, spec domain.RunSpec) error {
	args := []string{"run", "--name", spec.Name}
	if spec.Platform != "" {
		args = append(args, "--platform", spec.Platform)
	}
	for _, m := range spec.Mounts {
		bind := m.Source + ":" + m.Target
		if m.ReadOnly {
			bind += ":ro"
		}
		args = append(args, "--volume", bind)
	}
	if spec.WorkDir != "" {
		args = append(args, "--workdir", spec.WorkDir)
	}
	args = append(args, spec.Image, "sh", "-ec", RenderScript(spec.Script))

	if _, err := r.runner.Run(ctx, r.command(args...)); err != nil {
		runErr := zerr.Wrap(err, domain.ErrContainerFailed.Error())
		runErr = zerr.With(runErr, "container", spec.Name)
		return domain.Tag(domain.ErrProcess, zerr.With(runErr, "image", spec.Image))
	}
	return nil
}

// RemoveContainer force-removes the container name.
func (r *Runtime) RemoveContainer(ctx context.Context, name string) error {
	if _, err := r.runner.Run(ctx, r.command("rm", "--force", name)); err != nil {
		return domain.Tag(domain.ErrProcess, zerr.With(zerr.Wrap(err, domain.ErrContainerRemoveFailed.Error()), "container", name))
	}
	return nil
}

func (r *Runtime) command(args ...string) domain.Command {
	return domain.Command{Name: r.exe, Args: args}
}
