package domain

import "time"

// Defaults applied when the environment does not say otherwise.
const (
	DefaultPackageManager   = "conda"
	DefaultContainerRuntime = "docker"
	DefaultBaseImage        = "continuumio/miniconda3:latest"
	DefaultCommandTimeout   = 30 * time.Minute
)

// Config carries everything condalock reads from its environment. It is built once at
// startup and passed to the components that need it.
type Config struct {
	// Root is the conda installation root. Installed environments live in Root/envs.
	Root string

	// PackageManager is the conda-compatible executable used to create and export environments.
	PackageManager string

	// ContainerRuntime is the docker-compatible executable used for cross-platform freezes.
	ContainerRuntime string

	// BaseImage is the image cross-platform freezes build on.
	BaseImage string

	// CommandTimeout bounds every subprocess call.
	CommandTimeout time.Duration

	// TempDir is where scratch directories are created.
	TempDir string
}

// DeployedLockPath returns the lockfile path of the installed environment name.
func (c Config) DeployedLockPath(name string) (string, error) {
	if c.Root == "" {
		return "", Tag(ErrConfig, Detail(ErrRootNotConfigured, "variable", "CONDA_ROOT"))
	}
	return DeployedLockPath(c.Root, name), nil
}
