package domain

import (
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// LockCheck is the outcome of comparing one lockfile against a spec hash.
type LockCheck struct {
	Path     string
	Expected ContentHash
	// Found is the hash embedded in the lockfile. Empty when it could not be read.
	Found ContentHash
	// Err is set when the lockfile is unreadable, lacks a hash, or does not match.
	Err error
}

// OK reports whether the lockfile matches.
func (c LockCheck) OK() bool {
	return c.Err == nil
}

// CheckReport collects the outcome of checking several lockfiles against one spec.
type CheckReport struct {
	SpecPath string
	Expected ContentHash
	Checks   []LockCheck
}

// Failed returns the checks that did not pass, in input order.
func (r CheckReport) Failed() []LockCheck {
	var failed []LockCheck
	for _, c := range r.Checks {
		if !c.OK() {
			failed = append(failed, c)
		}
	}
	return failed
}

// Err returns nil when every check passed. Otherwise it returns an ErrHashMismatch error
// counting the failures. The individual errors are joined underneath it.
func (r CheckReport) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	causes := make([]error, 0, len(failed))
	paths := make([]string, 0, len(failed))
	for _, c := range failed {
		causes = append(causes, c.Err)
		paths = append(paths, c.Path)
	}
	err := zerr.Wrap(errors.Join(causes...), ErrLocksMismatched.Error())
	err = zerr.With(err, "spec", r.SpecPath)
	err = zerr.With(err, "failed", fmt.Sprintf("%d/%d", len(failed), len(r.Checks)))
	err = zerr.With(err, "lockfiles", strings.Join(paths, ", "))
	return Tag(ErrHashMismatch, err)
}

// CompareHashes returns nil when found equals expected and an ErrHashMismatch error naming
// both otherwise.
func CompareHashes(path string, expected, found ContentHash) error {
	if expected == found {
		return nil
	}
	err := zerr.New(fmt.Sprintf("%s was frozen from a different spec (lockfile hash %s, spec hash %s)", path, found, expected))
	err = zerr.With(err, "expected", expected.String())
	err = zerr.With(err, "found", found.String())
	return Tag(ErrHashMismatch, err)
}
