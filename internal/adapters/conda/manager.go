// Package conda drives a conda-compatible package manager through its CLI.
package conda

import (
	"bytes"
	"context"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager implements ports.PackageManager using the conda CLI.
type Manager struct {
	runner ports.CommandRunner
	exe    string
}

// NewManager creates a Manager invoking exe (conda, mamba, or a compatible binary).
func NewManager(runner ports.CommandRunner, exe string) *Manager {
	return &Manager{
		runner: runner,
		exe:    exe,
	}
}

// CreateEnvironment creates the environment name from the document at path, replacing
// any environment of the same name.
func (m *Manager) CreateEnvironment(ctx context.Context, name, path string) error {
	_, err := m.runner.Run(ctx, m.command("env", "create", "--force", "--quiet", "--name", name, "--file", path))
	if err != nil {
		createErr := zerr.Wrap(err, domain.ErrEnvCreateFailed.Error())
		createErr = zerr.With(createErr, "env", name)
		return domain.Tag(domain.ErrProcess, zerr.With(createErr, "file", path))
	}
	return nil
}

// ExportEnvironment returns the exported document of the environment name.
func (m *Manager) ExportEnvironment(ctx context.Context, name string) ([]byte, error) {
	res, err := m.runner.Run(ctx, m.command("env", "export", "--name", name))
	if err != nil {
		return nil, domain.Tag(domain.ErrProcess, zerr.With(zerr.Wrap(err, domain.ErrEnvExportFailed.Error()), "env", name))
	}
	if len(bytes.TrimSpace(res.Stdout)) == 0 {
		return nil, domain.Tag(domain.ErrProcess, domain.Detail(domain.ErrEmptyExport, "env", name))
	}
	return res.Stdout, nil
}

// RemoveEnvironment deletes the environment name and its packages.
func (m *Manager) RemoveEnvironment(ctx context.Context, name string) error {
	_, err := m.runner.Run(ctx, m.command("env", "remove", "--yes", "--name", name))
	if err != nil {
		return domain.Tag(domain.ErrProcess, zerr.With(zerr.Wrap(err, domain.ErrEnvRemoveFailed.Error()), "env", name))
	}
	return nil
}

func (m *Manager) command(args ...string) domain.Command {
	return domain.Command{Name: m.exe, Args: args}
}
