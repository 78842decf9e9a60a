// Package checker verifies lockfiles against the spec they were frozen from.
package checker

import (
	"context"
	"fmt"
	"runtime"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Checker compares spec hashes with the hashes embedded in lockfiles. It never writes.
type Checker struct {
	specs  ports.SpecReader
	locks  ports.LockfileStore
	logger ports.Logger
	cfg    domain.Config
}

// New creates a new Checker.
func New(specs ports.SpecReader, locks ports.LockfileStore, logger ports.Logger, cfg domain.Config) *Checker {
	return &Checker{
		specs:  specs,
		locks:  locks,
		logger: logger,
		cfg:    cfg,
	}
}

// CheckEnv verifies that the lockfile of the installed environment named by the spec at
// specPath was frozen from that spec. The returned error is the check's own error, if any.
func (c *Checker) CheckEnv(ctx context.Context, specPath string) (domain.LockCheck, error) {
	if err := ctx.Err(); err != nil {
		return domain.LockCheck{}, err
	}

	spec, err := c.specs.Read(specPath)
	if err != nil {
		return domain.LockCheck{}, err
	}

	path, err := c.cfg.DeployedLockPath(spec.Name)
	if err != nil {
		return domain.LockCheck{}, err
	}

	check := c.check(path, spec.Hash())
	if check.Err != nil {
		return check, zerr.With(zerr.Wrap(check.Err, "environment "+spec.Name+" does not match its spec"), "spec", specPath)
	}
	c.logger.Info(fmt.Sprintf("environment %s matches %s", spec.Name, specPath))
	return check, nil
}

// CheckLocks verifies every lockfile in lockPaths against the spec at specPath. When
// lockPaths is empty the lockfiles next to the spec are discovered. Every lockfile is
// checked; the report lists all of them and the error summarizes every failure.
func (c *Checker) CheckLocks(ctx context.Context, specPath string, lockPaths []string) (domain.CheckReport, error) {
	spec, err := c.specs.Read(specPath)
	if err != nil {
		return domain.CheckReport{}, err
	}

	if len(lockPaths) == 0 {
		lockPaths, err = c.locks.Discover(specPath)
		if err != nil {
			return domain.CheckReport{}, err
		}
		if len(lockPaths) == 0 {
			return domain.CheckReport{}, domain.Tag(domain.ErrIO, domain.Detail(domain.ErrNoLockfiles, "pattern", domain.LockPattern(specPath)))
		}
	}

	report := domain.CheckReport{
		SpecPath: specPath,
		Expected: spec.Hash(),
		Checks:   make([]domain.LockCheck, len(lockPaths)),
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range lockPaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				report.Checks[i] = domain.LockCheck{Path: path, Expected: report.Expected, Err: err}
				return nil
			}
			report.Checks[i] = c.check(path, report.Expected)
			return nil
		})
	}
	_ = g.Wait()

	for _, check := range report.Checks {
		if check.OK() {
			c.logger.Info(check.Path + " matches " + specPath)
		}
	}
	return report, report.Err()
}

func (c *Checker) check(path string, expected domain.ContentHash) domain.LockCheck {
	check := domain.LockCheck{Path: path, Expected: expected}

	found, _, err := c.locks.Read(path)
	if err != nil {
		check.Err = err
		return check
	}
	check.Found = found
	check.Err = domain.CompareHashes(path, expected, found)
	return check
}
