package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ValidationReport lists the requested dependencies a resolved document dropped.
type ValidationReport struct {
	MissingNative []string
	MissingSub    []string
}

// OK reports whether nothing was dropped.
func (r ValidationReport) OK() bool {
	return len(r.MissingNative) == 0 && len(r.MissingSub) == 0
}

// Err returns nil when r is OK and an ErrValidation error naming the missing packages otherwise.
func (r ValidationReport) Err() error {
	if r.OK() {
		return nil
	}
	err := zerr.New("resolved environment is missing requested packages")
	if len(r.MissingNative) > 0 {
		err = zerr.With(err, "missing", strings.Join(r.MissingNative, ", "))
	}
	if len(r.MissingSub) > 0 {
		err = zerr.With(err, "missing_sub", strings.Join(r.MissingSub, ", "))
	}
	return Tag(ErrValidation, err)
}

// Validate checks that every dependency named by spec is still present in candidate.
// Only names are compared: a resolver is free to pin versions and add transitive packages.
// Packages that the resolver renames or aliases are reported as missing.
func Validate(spec, candidate []byte) (ValidationReport, error) {
	want, err := ExtractDependencies(spec)
	if err != nil {
		return ValidationReport{}, zerr.Wrap(err, "failed to read spec dependencies")
	}
	have, err := ExtractDependencies(candidate)
	if err != nil {
		return ValidationReport{}, zerr.Wrap(err, "failed to read resolved dependencies")
	}
	return ValidationReport{
		MissingNative: missingFrom(want.Native, have.Native),
		MissingSub:    missingFrom(want.Sub, have.Sub),
	}, nil
}
