// Package freezer resolves specs into lockfiles, locally or inside a container.
package freezer

import (
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Service freezes specs into lockfiles.
type Service struct {
	specs     ports.SpecReader
	locks     ports.LockfileStore
	local     ports.Resolver
	container ports.Resolver
	tracer    ports.Tracer
	logger    ports.Logger
	host      func() (domain.Platform, error)
}

// Option configures a Service.
type Option func(*Service)

// WithHost fixes the platform the Service believes it runs on.
func WithHost(p domain.Platform) Option {
	return func(s *Service) {
		s.host = func() (domain.Platform, error) { return p, nil }
	}
}

// NewService creates a new Service. local resolves for the host platform, container
// for every other supported target.
func NewService(
	specs ports.SpecReader,
	locks ports.LockfileStore,
	local ports.Resolver,
	container ports.Resolver,
	tracer ports.Tracer,
	logger ports.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		specs:     specs,
		locks:     locks,
		local:     local,
		container: container,
		tracer:    tracer,
		logger:    logger,
		host:      domain.HostPlatform,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Freeze resolves the spec at specPath for target and writes the lockfile to lockPath.
// Nothing is written unless the resolved document keeps every requested dependency.
func (s *Service) Freeze(ctx context.Context, specPath, lockPath string, target domain.Platform) (err error) {
	host, err := s.host()
	if err != nil {
		return err
	}
	if err := domain.CheckFreezePair(host, target); err != nil {
		return err
	}

	spec, err := s.specs.Read(specPath)
	if err != nil {
		return err
	}
	expected := spec.Hash()

	ctx, span := s.tracer.Start(ctx, "freeze")
	defer span.End()
	defer func() { span.RecordError(err) }()
	span.SetAttribute("environment", spec.Name)
	span.SetAttribute("target", target.String())
	span.SetAttribute("host", host.String())

	resolver := s.local
	if target != host {
		resolver = s.container
	}

	s.logger.Info(fmt.Sprintf("freezing %s for %s", spec.Name, target.DisplayName()))
	doc, err := resolver.Resolve(ctx, spec, target)
	if err != nil {
		return err
	}

	if err := step(ctx, s.tracer, "validate", func(context.Context) error {
		report, err := domain.Validate(spec.Raw, doc)
		if err != nil {
			return err
		}
		if !report.OK() {
			return zerr.With(zerr.Wrap(report.Err(), "lockfile not written"), "spec", specPath)
		}
		return nil
	}); err != nil {
		return err
	}

	s.logChanges(lockPath, doc)

	if err := step(ctx, s.tracer, "write", func(context.Context) error {
		return s.locks.Write(lockPath, expected, doc)
	}); err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("wrote %s (hash %s)", lockPath, expected))
	return nil
}

// logChanges logs a diff between the lockfile already at path and doc.
func (s *Service) logChanges(path string, doc []byte) {
	_, previous, err := s.locks.Read(path)
	if err != nil {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(previous)),
		B:        difflib.SplitLines(string(doc)),
		FromFile: path + " (previous)",
		ToFile:   path,
		Context:  1,
	})
	if err != nil {
		return
	}
	if diff == "" {
		s.logger.Debug(path + " is unchanged")
		return
	}
	s.logger.Debug("changes to " + path + ":\n" + diff)
}
