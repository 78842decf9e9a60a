package domain

import "go.trai.ch/zerr"

// Error kinds. Every error that leaves a component is tagged with exactly one of these
// (see Tag) so callers can classify it with errors.Is.
var (
	// ErrIO is the kind for file and directory open, read and write failures.
	ErrIO = zerr.New("i/o failure")

	// ErrParse is the kind for malformed documents or a missing required name.
	ErrParse = zerr.New("parse failure")

	// ErrMissingHash is the kind for lockfiles that carry no hash sigil line.
	ErrMissingHash = zerr.New("no hash sigil found")

	// ErrHashMismatch is the kind for a stored hash that differs from the computed one.
	ErrHashMismatch = zerr.New("hashes do not match")

	// ErrUnsupportedPlatform is the kind for an unsupported host or host/target pair.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrProcess is the kind for failed or unusable external tool invocations.
	ErrProcess = zerr.New("external process failed")

	// ErrValidation is the kind for resolved documents that dropped a requested dependency.
	ErrValidation = zerr.New("resolved environment failed validation")

	// ErrConfig is the kind for missing or invalid configuration.
	ErrConfig = zerr.New("invalid configuration")
)

var (
	// ErrSpecReadFailed is returned when the spec file cannot be read.
	ErrSpecReadFailed = zerr.New("failed to read spec file")

	// ErrInvalidYAML is returned when a document is not well-formed YAML.
	ErrInvalidYAML = zerr.New("document is not well-formed YAML")

	// ErrEmptyDocument is returned when a document contains no YAML content.
	ErrEmptyDocument = zerr.New("document is empty")

	// ErrNotAMapping is returned when the top level of a document is not a mapping.
	ErrNotAMapping = zerr.New("document is not a mapping")

	// ErrMissingName is returned when a document has no name field.
	ErrMissingName = zerr.New("missing required field 'name'")

	// ErrNameNotString is returned when the name field is not a non-empty string.
	ErrNameNotString = zerr.New("field 'name' must be a non-empty string")

	// ErrDependenciesNotSequence is returned when the dependencies field is not a sequence.
	ErrDependenciesNotSequence = zerr.New("field 'dependencies' must be a sequence")

	// ErrDocumentEncodeFailed is returned when a rewritten document cannot be serialized.
	ErrDocumentEncodeFailed = zerr.New("failed to encode document")

	// ErrLockReadFailed is returned when a lockfile cannot be read.
	ErrLockReadFailed = zerr.New("failed to read lockfile")

	// ErrLockWriteFailed is returned when a lockfile cannot be written.
	ErrLockWriteFailed = zerr.New("failed to write lockfile")

	// ErrLockDiscoveryFailed is returned when lockfile discovery fails.
	ErrLockDiscoveryFailed = zerr.New("failed to discover lockfiles")

	// ErrNoLockfiles is returned when no lockfiles were named or discovered.
	ErrNoLockfiles = zerr.New("no lockfiles to check")

	// ErrLocksMismatched is returned when at least one lockfile failed a check.
	ErrLocksMismatched = zerr.New("one or more lockfiles do not match the spec")

	// ErrScratchCreateFailed is returned when a scratch directory cannot be created.
	ErrScratchCreateFailed = zerr.New("failed to create scratch directory")

	// ErrScratchStageFailed is returned when a document cannot be staged into a scratch directory.
	ErrScratchStageFailed = zerr.New("failed to stage document into scratch directory")

	// ErrHarvestFailed is returned when the resolved document cannot be collected.
	ErrHarvestFailed = zerr.New("failed to harvest resolved document")

	// ErrCleanupFailed is returned when an ephemeral resource could not be released.
	ErrCleanupFailed = zerr.New("failed to release ephemeral resource")

	// ErrCommandStartFailed is returned when an external command cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrCommandFailed is returned when an external command exits with a non-zero status.
	ErrCommandFailed = zerr.New("command exited with non-zero status")

	// ErrCommandTimedOut is returned when an external command exceeds its timeout.
	ErrCommandTimedOut = zerr.New("command timed out")

	// ErrEnvCreateFailed is returned when the package manager cannot create an environment.
	ErrEnvCreateFailed = zerr.New("failed to create environment")

	// ErrEnvExportFailed is returned when the package manager cannot export an environment.
	ErrEnvExportFailed = zerr.New("failed to export environment")

	// ErrEnvRemoveFailed is returned when the package manager cannot remove an environment.
	ErrEnvRemoveFailed = zerr.New("failed to remove environment")

	// ErrEmptyExport is returned when an export produced no document.
	ErrEmptyExport = zerr.New("package manager exported an empty document")

	// ErrImageBuildFailed is returned when the isolated build image cannot be built.
	ErrImageBuildFailed = zerr.New("failed to build freeze image")

	// ErrContainerFailed is returned when the freeze container exits unsuccessfully.
	ErrContainerFailed = zerr.New("freeze container failed")

	// ErrContainerRemoveFailed is returned when a freeze container cannot be removed.
	ErrContainerRemoveFailed = zerr.New("failed to remove freeze container")

	// ErrRootNotConfigured is returned when no environment root is configured.
	ErrRootNotConfigured = zerr.New("environment root is not configured, set CONDA_ROOT")

	// ErrInvalidTimeout is returned when the configured timeout cannot be parsed.
	ErrInvalidTimeout = zerr.New("invalid command timeout")
)
