// Package config builds the runtime configuration from the process environment.
package config

import (
	"os"
	"time"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the loader.
const (
	EnvRoot             = "CONDA_ROOT"
	EnvCondaExe         = "CONDA_EXE"
	EnvMambaExe         = "MAMBA_EXE"
	EnvContainerRuntime = "CONDALOCK_CONTAINER_RUNTIME"
	EnvBaseImage        = "CONDALOCK_BASE_IMAGE"
	EnvTimeout          = "CONDALOCK_TIMEOUT"
	EnvConfigFile       = "CONDALOCK_CONFIG"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Loader implements ports.ConfigLoader.
type Loader struct {
	lookup   LookupFunc
	readFile func(path string) ([]byte, error)
	tempDir  func() string
	logger   ports.Logger
}

// NewLoader creates a loader reading the real process environment.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{
		lookup:   os.LookupEnv,
		readFile: os.ReadFile,
		tempDir:  os.TempDir,
		logger:   log,
	}
}

// WithLookup replaces the environment lookup. Used for testing.
func (l *Loader) WithLookup(fn LookupFunc) *Loader {
	l.lookup = fn
	return l
}

// WithTempDir replaces the scratch root lookup. Used for testing.
func (l *Loader) WithTempDir(fn func() string) *Loader {
	l.tempDir = fn
	return l
}

// Load builds the configuration: defaults, then the optional file named by
// CONDALOCK_CONFIG, then individual environment variables.
func (l *Loader) Load() (domain.Config, error) {
	cfg := domain.Config{
		PackageManager:   domain.DefaultPackageManager,
		ContainerRuntime: domain.DefaultContainerRuntime,
		BaseImage:        domain.DefaultBaseImage,
		CommandTimeout:   domain.DefaultCommandTimeout,
		TempDir:          l.tempDir(),
	}

	if path, ok := l.get(EnvConfigFile); ok {
		if err := l.applyFile(&cfg, path); err != nil {
			return domain.Config{}, err
		}
	}

	if v, ok := l.get(EnvRoot); ok {
		cfg.Root = v
	}
	if v, ok := l.get(EnvCondaExe); ok {
		cfg.PackageManager = v
	} else if v, ok := l.get(EnvMambaExe); ok {
		cfg.PackageManager = v
	}
	if v, ok := l.get(EnvContainerRuntime); ok {
		cfg.ContainerRuntime = v
	}
	if v, ok := l.get(EnvBaseImage); ok {
		cfg.BaseImage = v
	}
	if v, ok := l.get(EnvTimeout); ok {
		d, err := parseTimeout(v, EnvTimeout)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.CommandTimeout = d
	}

	l.logger.Debug("package manager: " + cfg.PackageManager + ", container runtime: " + cfg.ContainerRuntime)
	return cfg, nil
}

// get returns a non-empty variable.
func (l *Loader) get(key string) (string, bool) {
	v, ok := l.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (l *Loader) applyFile(cfg *domain.Config, path string) error {
	data, err := l.readFile(path)
	if err != nil {
		return domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path))
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Tag(domain.ErrConfig, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path))
	}

	if file.Root != "" {
		cfg.Root = file.Root
	}
	if file.PackageManager != "" {
		cfg.PackageManager = file.PackageManager
	}
	if file.ContainerRuntime != "" {
		cfg.ContainerRuntime = file.ContainerRuntime
	}
	if file.BaseImage != "" {
		cfg.BaseImage = file.BaseImage
	}
	if file.Timeout != "" {
		d, err := parseTimeout(file.Timeout, "timeout")
		if err != nil {
			return err
		}
		cfg.CommandTimeout = d
	}

	l.logger.Debug("loaded config file " + path)
	return nil
}

func parseTimeout(v, source string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, domain.Tag(domain.ErrConfig, domain.Detail(domain.ErrInvalidTimeout, "source", source, "value", v))
	}
	return d, nil
}
