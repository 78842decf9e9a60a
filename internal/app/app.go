// Package app implements the application layer for condalock.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.trai.ch/condalock/internal/adapters/detector"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/condalock/internal/engine/checker"
	"go.trai.ch/condalock/internal/engine/freezer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	freezer *freezer.Service
	checker *checker.Checker
	locks   ports.LockfileStore
	manager ports.PackageManager
	logger  ports.Logger
	tracer  ports.Tracer
	cfg     domain.Config
	stdout  io.Writer
	host    func() (domain.Platform, error)
}

// New creates a new App instance.
func New(
	freeze *freezer.Service,
	check *checker.Checker,
	locks ports.LockfileStore,
	manager ports.PackageManager,
	log ports.Logger,
	tracer ports.Tracer,
	cfg domain.Config,
) *App {
	return &App{
		freezer: freeze,
		checker: check,
		locks:   locks,
		manager: manager,
		logger:  log,
		tracer:  tracer,
		cfg:     cfg,
		stdout:  os.Stdout,
		host:    domain.HostPlatform,
	}
}

// WithStdout redirects the results printed by the App.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithHost fixes the platform the App believes it runs on.
func (a *App) WithHost(p domain.Platform) *App {
	a.host = func() (domain.Platform, error) { return p, nil }
	return a
}

// FreezeOptions configures Freeze. Empty fields take their defaults.
type FreezeOptions struct {
	SpecPath string
	LockPath string
	Target   string
}

// CreateOptions configures Create. Empty fields take their defaults.
type CreateOptions struct {
	LockPath string
	Target   string
}

// levelled is implemented by loggers whose level and format can change at runtime.
type levelled interface {
	SetLevel(level slog.Level)
	SetJSON(enable bool)
}

// ConfigureLogging applies the verbosity count and the requested log format.
func (a *App) ConfigureLogging(verbosity int, format string) error {
	requested, err := detector.ParseFormat(format)
	if err != nil {
		return err
	}

	l, ok := a.logger.(levelled)
	if !ok {
		return nil
	}

	switch {
	case verbosity >= 2:
		l.SetLevel(slog.LevelDebug)
	case verbosity == 1:
		l.SetLevel(slog.LevelInfo)
	default:
		l.SetLevel(slog.LevelWarn)
	}
	l.SetJSON(detector.ResolveFormat(detector.DetectEnvironment(), requested) == detector.FormatJSON)
	return nil
}

// Freeze resolves a spec for a target platform and writes its lockfile.
func (a *App) Freeze(ctx context.Context, opts FreezeOptions) error {
	target, err := a.target(opts.Target)
	if err != nil {
		return err
	}

	specPath := orDefault(opts.SpecPath, domain.DefaultSpecFile)
	lockPath := orDefault(opts.LockPath, domain.LockPathFor(specPath, target))

	if err := a.freezer.Freeze(ctx, specPath, lockPath, target); err != nil {
		return zerr.Wrap(err, "freeze failed")
	}

	_, _ = fmt.Fprintf(a.stdout, "froze %s for %s into %s\n", specPath, target.DisplayName(), lockPath)
	return nil
}

// Create installs the environment described by a lockfile and records the lockfile next
// to it so CheckEnv can verify the installation later.
func (a *App) Create(ctx context.Context, opts CreateOptions) error {
	host, err := a.host()
	if err != nil {
		return err
	}
	target, err := a.target(opts.Target)
	if err != nil {
		return err
	}
	if target != host {
		err := zerr.New("cannot create a " + target.DisplayName() + " environment on " + host.DisplayName())
		err = zerr.With(err, "host", host.String())
		return domain.Tag(domain.ErrUnsupportedPlatform, zerr.With(err, "target", target.String()))
	}

	lockPath := orDefault(opts.LockPath, domain.LockPathFor(domain.DefaultSpecFile, target))
	hash, doc, err := a.locks.Read(lockPath)
	if err != nil {
		return err
	}
	name, err := domain.DocumentName(doc)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid lockfile"), "path", lockPath)
	}
	deployed, err := a.cfg.DeployedLockPath(name)
	if err != nil {
		return err
	}

	ctx, span := a.tracer.Start(ctx, "create")
	defer span.End()
	span.SetAttribute("environment", name)

	a.logger.Info(fmt.Sprintf("creating environment %s from %s", name, lockPath))
	if err := freezer.Install(ctx, a.manager, a.cfg.TempDir, name, doc); err != nil {
		span.RecordError(err)
		return err
	}
	if err := a.locks.Write(deployed, hash, doc); err != nil {
		span.RecordError(err)
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "created environment %s\n", name)
	return nil
}

// CheckEnv verifies the installed environment against the spec at specPath.
func (a *App) CheckEnv(ctx context.Context, specPath string) error {
	specPath = orDefault(specPath, domain.DefaultSpecFile)

	check, err := a.checker.CheckEnv(ctx, specPath)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.stdout, "%s: ok\n", check.Path)
	return nil
}

// CheckLocks verifies lockfiles against the spec at specPath. Without lockPaths the
// lockfiles next to the spec are checked.
func (a *App) CheckLocks(ctx context.Context, specPath string, lockPaths []string) error {
	specPath = orDefault(specPath, domain.DefaultSpecFile)

	report, err := a.checker.CheckLocks(ctx, specPath, lockPaths)
	for _, check := range report.Checks {
		status := "ok"
		if !check.OK() {
			status = "FAILED"
		}
		_, _ = fmt.Fprintf(a.stdout, "%s: %s\n", check.Path, status)
	}
	return err
}

// Shutdown releases the resources held by the App.
func (a *App) Shutdown(ctx context.Context) error {
	return a.tracer.Shutdown(ctx)
}

func (a *App) target(requested string) (domain.Platform, error) {
	if requested == "" {
		return a.host()
	}
	return domain.ParsePlatform(requested)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
