package freezer

import (
	"context"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
)

// Install creates the environment name from a resolved document. The package manager
// only accepts environment files with a YAML extension, so doc is staged as lock.yml in a
// scratch directory under tempDir, which is released on every return path.
func Install(ctx context.Context, manager ports.PackageManager, tempDir, name string, doc []byte) (err error) {
	dir, err := newScratch(tempDir, "create")
	if err != nil {
		return err
	}
	defer func() { joinRelease(&err, dir.release()) }()

	path, err := dir.write(domain.ScratchLockFile, doc)
	if err != nil {
		return err
	}
	return manager.CreateEnvironment(ctx, name, path)
}
