package domain

import "path/filepath"

const (
	// DefaultSpecFile is the spec read when no path is given.
	DefaultSpecFile = "deps.yml"

	// DeployedLockFile is the lockfile name inside an installed environment's directory.
	DeployedLockFile = "deps.yml.lock"

	// EnvsDir is the directory under the conda root that holds installed environments.
	EnvsDir = "envs"

	// LockExt terminates every lockfile name.
	LockExt = ".lock"

	// DirPerm is the permission used for directories created by condalock.
	DirPerm = 0o750

	// FilePerm is the permission used for lockfiles.
	FilePerm = 0o644
)

// Names used inside a freeze scratch directory.
const (
	ScratchSpecFile  = "deps.yml"
	ScratchLockFile  = "lock.yml"
	ContainerWorkDir = "/work"
)

// LockPathFor returns the lockfile path for specPath on target, e.g. deps.yml.linux.lock.
func LockPathFor(specPath string, target Platform) string {
	return specPath + "." + target.String() + LockExt
}

// LockPattern returns the glob matching every per-platform lockfile of specPath.
func LockPattern(specPath string) string {
	return specPath + ".*" + LockExt
}

// DeployedLockPath returns where the lockfile of the installed environment name lives.
func DeployedLockPath(root, name string) string {
	return filepath.Join(root, EnvsDir, name, DeployedLockFile)
}
